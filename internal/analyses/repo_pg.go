package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-ats/internal/ats"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const analysisColumns = `id, resume_id, user_id, job_description, status, ats_score,
    keywords_found, keywords_missing, section_scores, score_breakdown, suggestions, detailed_feedback,
    extracted_text, error_code, error_message, request_id, created_at, started_at, completed_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new analysis row.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO resume_analyses (
    id,
    resume_id,
    user_id,
    job_description,
    status,
    request_id,
    created_at,
    started_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.ResumeID,
		analysis.UserID,
		nullString(analysis.JobDescription),
		analysis.Status,
		nullString(analysis.RequestID),
		analysis.CreatedAt,
		nullTime(analysis.StartedAt),
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	query := `SELECT ` + analysisColumns + `
FROM resume_analyses
WHERE id = $1`
	analysis, err := scanAnalysis(r.DB.QueryRowContext(ctx, query, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return Analysis{}, ErrNotFound
	}
	return analysis, err
}

// Complete writes every result column and the completed status in a single statement.
func (r *PGRepo) Complete(ctx context.Context, analysisID string, result ats.ResumeAnalysis, extractedText string, completedAt time.Time) error {
	const query = `
UPDATE resume_analyses
SET status = 'completed',
    ats_score = $2,
    keywords_found = $3::jsonb,
    keywords_missing = $4::jsonb,
    section_scores = $5::jsonb,
    score_breakdown = $6::jsonb,
    suggestions = $7::jsonb,
    detailed_feedback = $8::jsonb,
    extracted_text = $9,
    error_code = NULL,
    error_message = NULL,
    completed_at = $10,
    updated_at = $10
WHERE id = $1 AND status IN ('pending', 'processing')`

	columns := []any{result.KeywordsFound, result.KeywordsMissing, result.SectionScores, result.ScoreBreakdown, result.Suggestions, result.SpecificFeedback}
	payloads := make([]any, 0, len(columns))
	for _, col := range columns {
		payload, err := marshalJSONB(col)
		if err != nil {
			return fmt.Errorf("marshal analysis result: %w", err)
		}
		payloads = append(payloads, payload)
	}

	args := append([]any{analysisID, result.ATSScore}, payloads...)
	args = append(args, extractedText, completedAt)
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return r.checkFinished(ctx, analysisID, res)
}

// Fail records a terminal failure.
func (r *PGRepo) Fail(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	const query = `
UPDATE resume_analyses
SET status = 'failed',
    error_code = $2,
    error_message = $3,
    completed_at = $4,
    updated_at = $4
WHERE id = $1 AND status IN ('pending', 'processing')`

	res, err := r.DB.ExecContext(ctx, query, analysisID, code, message, completedAt)
	if err != nil {
		return err
	}
	return r.checkFinished(ctx, analysisID, res)
}

func (r *PGRepo) checkFinished(ctx context.Context, analysisID string, res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM resume_analyses WHERE id = $1)`, analysisID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFinished
	}
	return ErrNotFound
}

// List returns analyses for a user ordered newest-first, optionally narrowed to one resume.
func (r *PGRepo) List(ctx context.Context, filter ListFilter) ([]Analysis, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := max(filter.Offset, 0)

	query := `SELECT ` + analysisColumns + `
FROM resume_analyses
WHERE user_id = $1 AND ($2 = '' OR resume_id::text = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

	rows, err := r.DB.QueryContext(ctx, query, filter.UserID, filter.ResumeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, analysis)
	}
	return out, rows.Err()
}

func scanAnalysis(row rowScanner) (Analysis, error) {
	var (
		a                                                      Analysis
		jobDescription, extractedText                          sql.NullString
		errorCode, errorMessage, requestID                     sql.NullString
		atsScore                                               sql.NullInt32
		found, missing, sections, breakdown, suggest, feedback []byte
		startedAt, completedAt                                 sql.NullTime
	)
	err := row.Scan(
		&a.ID,
		&a.ResumeID,
		&a.UserID,
		&jobDescription,
		&a.Status,
		&atsScore,
		&found,
		&missing,
		&sections,
		&breakdown,
		&suggest,
		&feedback,
		&extractedText,
		&errorCode,
		&errorMessage,
		&requestID,
		&a.CreatedAt,
		&startedAt,
		&completedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}

	a.JobDescription = jobDescription.String
	a.ExtractedText = extractedText.String
	a.ErrorCode = errorCode.String
	a.ErrorMessage = errorMessage.String
	a.RequestID = requestID.String
	if startedAt.Valid {
		a.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		a.CompletedAt = &completedAt.Time
	}

	if a.Status == StatusCompleted && atsScore.Valid {
		result := ats.ResumeAnalysis{ATSScore: int(atsScore.Int32)}
		for _, col := range []struct {
			raw  []byte
			dest any
		}{
			{found, &result.KeywordsFound},
			{missing, &result.KeywordsMissing},
			{sections, &result.SectionScores},
			{breakdown, &result.ScoreBreakdown},
			{suggest, &result.Suggestions},
			{feedback, &result.SpecificFeedback},
		} {
			if len(col.raw) == 0 {
				continue
			}
			if err := json.Unmarshal(col.raw, col.dest); err != nil {
				return Analysis{}, fmt.Errorf("decode analysis %s result: %w", a.ID, err)
			}
		}
		a.Result = &result
	}
	return a, nil
}

func marshalJSONB(value any) ([]byte, error) {
	return json.Marshal(value)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
