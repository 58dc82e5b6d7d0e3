package resumes

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return resume, nil
}

func (r *MemoryRepo) Update(ctx context.Context, resume Resume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.resumes[resume.ID]
	if !ok {
		return ErrNotFound
	}
	resume.Status = existing.Status
	resume.ViewsCount = existing.ViewsCount
	resume.ResponsesCount = existing.ResponsesCount
	resume.CreatedAt = existing.CreatedAt
	resume.PublishedAt = existing.PublishedAt
	r.resumes[resume.ID] = resume
	return nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.resumes {
		if resume.OwnerID == ownerID {
			out = append(out, resume)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) ListPublished(ctx context.Context) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, resume := range r.resumes {
		if resume.Status == StatusPublished {
			out = append(out, resume)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, id string, status Status, publishedAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return ErrNotFound
	}
	resume.Status = status
	if resume.PublishedAt == nil && publishedAt != nil {
		resume.PublishedAt = publishedAt
	}
	r.resumes[id] = resume
	return nil
}

func (r *MemoryRepo) IncrementViews(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return ErrNotFound
	}
	resume.ViewsCount++
	r.resumes[id] = resume
	return nil
}

func (r *MemoryRepo) IncrementResponses(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume, ok := r.resumes[id]
	if !ok {
		return ErrNotFound
	}
	resume.ResponsesCount++
	r.resumes[id] = resume
	return nil
}

func sortByCreatedDesc(items []Resume) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
