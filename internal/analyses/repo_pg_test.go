package analyses

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-ats/internal/ats"
)

var analysisColumnNames = []string{
	"id", "resume_id", "user_id", "job_description", "status", "ats_score",
	"keywords_found", "keywords_missing", "section_scores", "score_breakdown", "suggestions", "detailed_feedback",
	"extracted_text", "error_code", "error_message", "request_id", "created_at", "started_at", "completed_at", "updated_at",
}

func newMock(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	analysis := Analysis{
		ID:        "analysis-1",
		ResumeID:  "resume-1",
		UserID:    "user-1",
		Status:    StatusProcessing,
		RequestID: "req-1",
		CreatedAt: now,
		StartedAt: &now,
	}

	mock.ExpectExec("INSERT INTO resume_analyses").
		WithArgs(
			analysis.ID,
			analysis.ResumeID,
			analysis.UserID,
			nil, // job_description
			analysis.Status,
			"req-1",
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), analysis); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCompleteWritesResult(t *testing.T) {
	repo, mock := newMock(t)
	completed := time.Now().UTC()
	result := ats.ResumeAnalysis{
		ATSScore:        81,
		KeywordsFound:   []string{"go"},
		KeywordsMissing: []string{"rust"},
		Suggestions:     []string{"Add metrics"},
	}

	mock.ExpectExec("UPDATE resume_analyses").
		WithArgs(
			"analysis-1",
			81,
			[]byte(`["go"]`),
			[]byte(`["rust"]`),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			[]byte(`["Add metrics"]`),
			sqlmock.AnyArg(),
			"resume text",
			completed,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Complete(context.Background(), "analysis-1", result, "resume text", completed); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoFailOnFinishedAnalysis(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE resume_analyses").
		WithArgs("analysis-1", ErrorCodeStorage, "boom", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("analysis-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Fail(context.Background(), "analysis-1", ErrorCodeStorage, "boom", time.Now())
	if !errors.Is(err, ErrAlreadyFinished) {
		t.Fatalf("expected ErrAlreadyFinished, got %v", err)
	}
}

func TestPGRepoFailOnMissingAnalysis(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectExec("UPDATE resume_analyses").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.Fail(context.Background(), "missing", ErrorCodeStorage, "boom", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoGetByIDDecodesCompletedResult(t *testing.T) {
	repo, mock := newMock(t)
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	completed := created.Add(2 * time.Second)

	mock.ExpectQuery("FROM resume_analyses").
		WithArgs("analysis-1").
		WillReturnRows(sqlmock.NewRows(analysisColumnNames).AddRow(
			"analysis-1", "resume-1", "user-1", "Go role", StatusCompleted, int64(77),
			`["go","docker"]`, `["rust"]`,
			`{"contact_info":100,"summary":85,"education":90,"skills":90,"formatting":85}`,
			`{"keyword_match":40,"section_match":99,"formatting_score":100,"readability_consistency":95}`,
			`["Add metrics"]`,
			`{"strengths":["Complete contact information"],"weaknesses":[],"missing_sections":[],"formatting_issues":[]}`,
			"resume text", nil, nil, "req-1", created, created, completed, completed,
		))

	got, err := repo.GetByID(context.Background(), "analysis-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Result == nil {
		t.Fatal("expected decoded result")
	}
	if got.Result.ATSScore != 77 || len(got.Result.KeywordsFound) != 2 || got.Result.SectionScores.Summary != 85 {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if got.Result.ScoreBreakdown.ReadabilityConsistency != 95 || got.Result.SpecificFeedback.Strengths[0] != "Complete contact information" {
		t.Fatalf("unexpected nested result: %+v", got.Result)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(completed) || got.RequestID != "req-1" {
		t.Fatalf("unexpected metadata: %+v", got)
	}
}

func TestPGRepoGetByIDFailedHasNoResult(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery("FROM resume_analyses").
		WithArgs("analysis-2").
		WillReturnRows(sqlmock.NewRows(analysisColumnNames).AddRow(
			"analysis-2", "resume-1", "user-1", nil, StatusFailed, nil,
			nil, nil, nil, nil, nil, nil,
			nil, ErrorCodeResumeNotFound, "resume not found: resume-1", nil, now, now, now, now,
		))

	got, err := repo.GetByID(context.Background(), "analysis-2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Result != nil || got.ErrorCode != ErrorCodeResumeNotFound || got.JobDescription != "" {
		t.Fatalf("unexpected analysis: %+v", got)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("FROM resume_analyses").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(analysisColumnNames))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListPassesResumeFilter(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs("user-1", "resume-1", 20, 0).
		WillReturnRows(sqlmock.NewRows(analysisColumnNames))

	out, err := repo.List(context.Background(), ListFilter{UserID: "user-1", ResumeID: "resume-1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
