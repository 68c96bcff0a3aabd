package resumes

import "context"

// Repo defines persistence operations for resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, userID, resumeID string) (Resume, error)
	// Get loads a resume regardless of owner; used by background workers.
	Get(ctx context.Context, resumeID string) (Resume, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error)
}
