package analyses

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"resume-ats/internal/ats"
)

// MemoryRepo stores analyses in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Analysis
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Analysis)}
}

// Create stores the analysis.
func (r *MemoryRepo) Create(ctx context.Context, analysis Analysis) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if analysis.UpdatedAt.IsZero() {
		analysis.UpdatedAt = analysis.CreatedAt
	}
	r.byID[analysis.ID] = analysis
	return nil
}

// GetByID returns an analysis by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, analysisID string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return Analysis{}, ErrNotFound
	}
	return copyAnalysis(analysis), nil
}

func (r *MemoryRepo) Complete(ctx context.Context, analysisID string, result ats.ResumeAnalysis, extractedText string, completedAt time.Time) error {
	return r.finish(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusCompleted
		res := cloneResult(result)
		a.Result = &res
		a.ExtractedText = extractedText
		a.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) Fail(ctx context.Context, analysisID, code, message string, completedAt time.Time) error {
	return r.finish(ctx, analysisID, func(a *Analysis) {
		a.Status = StatusFailed
		a.ErrorCode = code
		a.ErrorMessage = message
		a.CompletedAt = &completedAt
	})
}

func (r *MemoryRepo) finish(ctx context.Context, analysisID string, apply func(*Analysis)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	analysis, ok := r.byID[analysisID]
	if !ok {
		return ErrNotFound
	}
	if analysis.Terminal() {
		return ErrAlreadyFinished
	}
	apply(&analysis)
	analysis.UpdatedAt = time.Now().UTC()
	r.byID[analysisID] = analysis
	return nil
}

// List returns analyses for a user, newest first, with limit/offset.
func (r *MemoryRepo) List(ctx context.Context, filter ListFilter) ([]Analysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	offset := max(filter.Offset, 0)
	limit := max(filter.Limit, 0)

	r.mu.RLock()
	var out []Analysis
	for _, a := range r.byID {
		if a.UserID != filter.UserID {
			continue
		}
		if filter.ResumeID != "" && a.ResumeID != filter.ResumeID {
			continue
		}
		out = append(out, copyAnalysis(a))
	}
	r.mu.RUnlock()

	if offset >= len(out) {
		return []Analysis{}, nil
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	end := len(out)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return out[offset:end], nil
}

// copyAnalysis detaches the result slices so callers cannot edit stored rows.
func copyAnalysis(a Analysis) Analysis {
	if a.Result != nil {
		res := cloneResult(*a.Result)
		a.Result = &res
	}
	if a.CompletedAt != nil {
		at := *a.CompletedAt
		a.CompletedAt = &at
	}
	return a
}

func cloneResult(res ats.ResumeAnalysis) ats.ResumeAnalysis {
	res.KeywordsFound = slices.Clone(res.KeywordsFound)
	res.KeywordsMissing = slices.Clone(res.KeywordsMissing)
	res.Suggestions = slices.Clone(res.Suggestions)
	res.SpecificFeedback.Strengths = slices.Clone(res.SpecificFeedback.Strengths)
	res.SpecificFeedback.Weaknesses = slices.Clone(res.SpecificFeedback.Weaknesses)
	res.SpecificFeedback.MissingSections = slices.Clone(res.SpecificFeedback.MissingSections)
	res.SpecificFeedback.FormattingIssues = slices.Clone(res.SpecificFeedback.FormattingIssues)
	return res
}

var _ Repo = (*MemoryRepo)(nil)
