package resumes

import "time"

// Resume is an uploaded resume file owned by a user.
type Resume struct {
	ID         string
	UserID     string
	FileName   string
	FileType   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
