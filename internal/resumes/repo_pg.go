package resumes

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, file_name, file_type, mime_type, size_bytes, storage_key, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var mimeType sql.NullString
	err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.FileName,
		&res.FileType,
		&mimeType,
		&res.SizeBytes,
		&res.StorageKey,
		&res.CreatedAt,
	)
	if err != nil {
		return Resume{}, err
	}
	if mimeType.Valid {
		res.MimeType = mimeType.String
	}
	return res, nil
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    file_name,
    file_type,
    mime_type,
    size_bytes,
    storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	var mimeType sql.NullString
	if resume.MimeType != "" {
		mimeType = sql.NullString{String: resume.MimeType, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		resume.ID,
		resume.UserID,
		resume.FileName,
		resume.FileType,
		mimeType,
		resume.SizeBytes,
		resume.StorageKey,
		resume.CreatedAt,
	)
	return err
}

// GetByID fetches a resume owned by userID.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	query := `SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1 AND id = $2
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, userID, resumeID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return res, err
}

// Get fetches a resume by ID only.
func (r *PGRepo) Get(ctx context.Context, resumeID string) (Resume, error) {
	query := `SELECT ` + selectColumns + `
FROM resumes
WHERE id = $1
LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID))
	if errors.Is(err, sql.ErrNoRows) {
		return Resume{}, ErrNotFound
	}
	return res, err
}

// ListByUser lists resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + selectColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
