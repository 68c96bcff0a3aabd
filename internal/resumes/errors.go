package resumes

import "errors"

var (
	ErrNotFound            = errors.New("resume not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)
