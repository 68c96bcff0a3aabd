package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]Resume
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	res, err := r.Get(ctx, resumeID)
	if err != nil {
		return Resume{}, err
	}
	if res.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

func (r *MemoryRepo) Get(ctx context.Context, resumeID string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[resumeID]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return res, nil
}

// ListByUser returns resumes for a user, newest first, honoring limit/offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}

	r.mu.RLock()
	var out []Resume
	for _, res := range r.byID {
		if res.UserID == userID {
			out = append(out, res)
		}
	}
	r.mu.RUnlock()

	if offset >= len(out) {
		return []Resume{}, nil
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

var _ Repo = (*MemoryRepo)(nil)
