package resumes

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-ats/internal/extract"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
)

// DefaultMaxBytes is the upload cap when the service is built without one.
const DefaultMaxBytes int64 = 10 << 20

// Service contains business logic for resumes.
type Service struct {
	Store    object.ObjectStore
	Repo     Repo
	MaxBytes int64
	Now      func() time.Time
}

func (s *Service) maxBytes() int64 {
	if s.MaxBytes > 0 {
		return s.MaxBytes
	}
	return DefaultMaxBytes
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload validates the file, saves it to object storage and records the resume.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Resume, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return Resume{}, ErrInvalidInput
	}
	fileType, err := extract.DetectFileType(fileName, "")
	if err != nil {
		return Resume{}, fmt.Errorf("%w: %s", ErrUnsupportedFileType, fileName)
	}

	limit := s.maxBytes()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Resume{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return Resume{}, fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, limit)
	}
	if len(data) == 0 {
		return Resume{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	obj, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Resume{}, fmt.Errorf("store resume: %w", err)
	}

	res := Resume{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		FileType:   string(fileType),
		MimeType:   obj.MimeType,
		SizeBytes:  obj.Size,
		StorageKey: obj.Key,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Create(ctx, res); err != nil {
		return Resume{}, fmt.Errorf("record resume: %w", err)
	}

	metrics.IncResumeUploaded(res.FileType)
	telemetry.Info("resume.uploaded", map[string]any{
		"resume_id":  res.ID,
		"user_id":    userID,
		"file_type":  res.FileType,
		"size_bytes": res.SizeBytes,
	})
	return res, nil
}

// Get returns a resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	if userID == "" || strings.TrimSpace(resumeID) == "" {
		return Resume{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, resumeID)
}

// List returns the user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}
