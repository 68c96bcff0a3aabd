package analyses

import "errors"

var (
	ErrNotFound              = errors.New("analysis not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrResumeNotFound        = errors.New("resume not found")
	ErrJobQueueNotConfigured = errors.New("job queue not configured")
	ErrAlreadyFinished       = errors.New("analysis already finished")

	errStorage = errors.New("storage")
	errScoring = errors.New("scoring")
)

// Failure codes recorded on failed analyses.
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeResumeNotFound = "RESUME_NOT_FOUND"
	ErrorCodeStorage        = "STORAGE_ERROR"
	ErrorCodeExtraction     = "EXTRACTION_ERROR"
	ErrorCodeScoring        = "SCORING_ERROR"
	ErrorCodeQueue          = "QUEUE_ERROR"
	ErrorCodeInternal       = "INTERNAL_ERROR"
)
