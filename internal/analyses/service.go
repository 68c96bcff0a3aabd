package analyses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"resume-ats/internal/ats"
	"resume-ats/internal/extract"
	"resume-ats/internal/queue"
	"resume-ats/internal/resumes"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/storage/object"
	"resume-ats/internal/shared/telemetry"
	"resume-ats/internal/shared/util"
)

// MaxJobDescriptionRunes bounds the job description accepted on submit.
const MaxJobDescriptionRunes = 20000

const maxErrorMessageRunes = 500

// Scorer produces an analysis from resume text. *ats.Engine implements it.
type Scorer interface {
	Analyze(resumeText, jobDescription string) ats.ResumeAnalysis
}

// Service runs the analysis job pipeline.
type Service struct {
	Repo    Repo
	Resumes resumes.Repo
	Store   object.ObjectStore
	Engine  Scorer
	// Queue receives submitted jobs. When nil, jobs run in-process.
	Queue queue.Client
	Now   func() time.Time

	inflight sync.WaitGroup
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *Service) analyze(resumeText, jobDescription string) ats.ResumeAnalysis {
	if s.Engine != nil {
		return s.Engine.Analyze(resumeText, jobDescription)
	}
	return ats.Analyze(resumeText, jobDescription)
}

// Submit records a processing analysis for the caller's resume and hands it
// to the queue, or to a background goroutine when no queue is configured.
func (s *Service) Submit(ctx context.Context, userID, resumeID, jobDescription string) (Analysis, error) {
	resumeID = strings.TrimSpace(resumeID)
	if userID == "" || resumeID == "" {
		return Analysis{}, fmt.Errorf("%w: resume id is required", ErrInvalidInput)
	}
	jobDescription = strings.TrimSpace(jobDescription)
	if utf8.RuneCountInString(jobDescription) > MaxJobDescriptionRunes {
		return Analysis{}, fmt.Errorf("%w: job description exceeds %d characters", ErrInvalidInput, MaxJobDescriptionRunes)
	}

	res, err := s.Resumes.GetByID(ctx, userID, resumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return Analysis{}, ErrResumeNotFound
		}
		return Analysis{}, fmt.Errorf("load resume: %w", err)
	}

	now := s.now()
	analysis := Analysis{
		ID:             uuid.NewString(),
		ResumeID:       res.ID,
		UserID:         userID,
		JobDescription: jobDescription,
		Status:         StatusProcessing,
		RequestID:      requestIDFromContext(ctx),
		CreatedAt:      now,
		StartedAt:      &now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Create(ctx, analysis); err != nil {
		return Analysis{}, fmt.Errorf("create analysis: %w", err)
	}
	metrics.IncAnalysisStarted()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        analysis.RequestID,
		"user_id":           userID,
		"resume_id":         res.ID,
		"analysis_id":       analysis.ID,
		"status":            StatusProcessing,
		"status_transition": "->processing",
	})

	if s.Queue != nil {
		msg := queue.NewMessage(analysis.ID, analysis.ResumeID, analysis.RequestID, now)
		if err := s.Queue.Send(ctx, msg); err != nil {
			_ = s.recordFailure(context.Background(), analysis, ErrorCodeQueue, sanitizeError(err))
			return Analysis{}, fmt.Errorf("enqueue analysis: %w", err)
		}
		return analysis, nil
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		if err := s.ProcessAnalysis(backgroundWithRequestID(ctx), analysis.ID); err != nil {
			telemetry.Error("analysis.process_failed", map[string]any{
				"analysis_id": analysis.ID,
				"error":       err.Error(),
			})
		}
	}()
	return analysis, nil
}

// Wait blocks until in-process jobs started by Submit have finished.
func (s *Service) Wait() {
	s.inflight.Wait()
}

// Get returns an analysis owned by userID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, fmt.Errorf("%w: analysis id is required", ErrInvalidInput)
	}
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// List returns the caller's analyses newest first, optionally for one resume.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Analysis, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.Repo.List(ctx, filter)
}

// Score runs the engine directly on text without persisting anything.
func (s *Service) Score(resumeText, jobDescription string) ats.ResumeAnalysis {
	return s.analyze(resumeText, jobDescription)
}

// ProcessAnalysis runs one job to a terminal state. Failures of the job itself
// are recorded on the analysis and yield a nil error; a non-nil error means the
// outcome could not be persisted and the job should be retried.
func (s *Service) ProcessAnalysis(ctx context.Context, analysisID string) error {
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", analysisID, err)
	}
	if analysis.Terminal() {
		telemetry.Info("analysis.skip_terminal", map[string]any{
			"analysis_id": analysis.ID,
			"status":      analysis.Status,
		})
		return nil
	}
	if analysis.RequestID != "" && requestIDFromContext(ctx) == "" {
		ctx = withRequestID(ctx, analysis.RequestID)
	}

	result, text, err := s.run(ctx, analysis)
	if err != nil {
		return s.failAnalysis(ctx, analysis, err)
	}

	completedAt := s.now()
	if err := s.Repo.Complete(ctx, analysis.ID, result, text, completedAt); err != nil {
		if errors.Is(err, ErrAlreadyFinished) {
			return nil
		}
		return fmt.Errorf("store analysis result: %w", err)
	}

	duration := elapsed(analysis.StartedAt, completedAt)
	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDuration(duration)
	metrics.ObserveScore(result.ATSScore)
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"resume_id":         analysis.ResumeID,
		"analysis_id":       analysis.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"ats_score":         result.ATSScore,
		"duration_ms":       duration.Milliseconds(),
	})
	return nil
}

func (s *Service) run(ctx context.Context, analysis Analysis) (ats.ResumeAnalysis, string, error) {
	res, err := s.Resumes.Get(ctx, analysis.ResumeID)
	if err != nil {
		if errors.Is(err, resumes.ErrNotFound) {
			return ats.ResumeAnalysis{}, "", fmt.Errorf("%w: %s", ErrResumeNotFound, analysis.ResumeID)
		}
		return ats.ResumeAnalysis{}, "", fmt.Errorf("%w: load resume: %w", errStorage, err)
	}

	text, err := extract.ExtractText(ctx, s.Store, res.StorageKey, extract.FileType(res.FileType))
	if err != nil {
		if errors.Is(err, extract.ErrExtraction) || errors.Is(err, extract.ErrUnsupportedType) {
			return ats.ResumeAnalysis{}, "", err
		}
		return ats.ResumeAnalysis{}, "", fmt.Errorf("%w: %w", errStorage, err)
	}

	result, err := s.score(text, analysis.JobDescription)
	if err != nil {
		return ats.ResumeAnalysis{}, "", err
	}
	return result, text, nil
}

func (s *Service) score(text, jobDescription string) (result ats.ResumeAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", errScoring, r)
		}
	}()
	return s.analyze(text, jobDescription), nil
}

func (s *Service) failAnalysis(ctx context.Context, analysis Analysis, cause error) error {
	code := classifyFailure(cause)
	return s.recordFailure(ctx, analysis, code, sanitizeError(cause))
}

func (s *Service) recordFailure(ctx context.Context, analysis Analysis, code, message string) error {
	completedAt := s.now()
	if err := s.Repo.Fail(ctx, analysis.ID, code, message, completedAt); err != nil {
		if errors.Is(err, ErrAlreadyFinished) {
			return nil
		}
		telemetry.Error("analysis.fail_update_failed", map[string]any{
			"analysis_id": analysis.ID,
			"code":        code,
			"error":       err.Error(),
		})
		return fmt.Errorf("record analysis failure: %w", err)
	}

	duration := elapsed(analysis.StartedAt, completedAt)
	metrics.IncAnalysisFailed(code)
	metrics.ObserveAnalysisDuration(duration)
	telemetry.Info("analysis.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           analysis.UserID,
		"resume_id":         analysis.ResumeID,
		"analysis_id":       analysis.ID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       duration.Milliseconds(),
	})
	return nil
}

func elapsed(startedAt *time.Time, completedAt time.Time) time.Duration {
	if startedAt == nil {
		return 0
	}
	return completedAt.Sub(*startedAt)
}

func classifyFailure(err error) string {
	switch {
	case err == nil:
		return ErrorCodeInternal
	case errors.Is(err, ErrResumeNotFound):
		return ErrorCodeResumeNotFound
	case errors.Is(err, extract.ErrExtraction), errors.Is(err, extract.ErrUnsupportedType):
		return ErrorCodeExtraction
	case errors.Is(err, errScoring):
		return ErrorCodeScoring
	case errors.Is(err, errStorage), errors.Is(err, object.ErrNotFound):
		return ErrorCodeStorage
	default:
		return ErrorCodeInternal
	}
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	return util.Truncate(strings.TrimSpace(msg), maxErrorMessageRunes)
}
