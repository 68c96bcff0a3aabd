package analyses

import (
	"time"

	"resume-ats/internal/ats"
)

// Analyses are created in processing. The schema also admits "pending", which
// Complete and Fail treat like processing.
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Analysis is one scoring job for a resume. Result is set only once the
// analysis has completed; ErrorCode and ErrorMessage only once it failed.
type Analysis struct {
	ID             string
	ResumeID       string
	UserID         string
	JobDescription string
	Status         string
	Result         *ats.ResumeAnalysis
	ExtractedText  string
	ErrorCode      string
	ErrorMessage   string
	RequestID      string
	CreatedAt      time.Time
	StartedAt      *time.Time
	CompletedAt    *time.Time
	UpdatedAt      time.Time
}

// Terminal reports whether the analysis has reached completed or failed.
func (a Analysis) Terminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusFailed
}

// ListFilter narrows analysis listings. ResumeID is optional.
type ListFilter struct {
	UserID   string
	ResumeID string
	Limit    int
	Offset   int
}
