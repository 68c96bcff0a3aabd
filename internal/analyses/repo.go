package analyses

import (
	"context"
	"time"

	"resume-ats/internal/ats"
)

// Repo defines persistence operations for analyses.
type Repo interface {
	Create(ctx context.Context, analysis Analysis) error
	GetByID(ctx context.Context, analysisID string) (Analysis, error)
	// Complete stores the full result in one write. It returns
	// ErrAlreadyFinished when the analysis is no longer processing.
	Complete(ctx context.Context, analysisID string, result ats.ResumeAnalysis, extractedText string, completedAt time.Time) error
	Fail(ctx context.Context, analysisID, code, message string, completedAt time.Time) error
	List(ctx context.Context, filter ListFilter) ([]Analysis, error)
}
