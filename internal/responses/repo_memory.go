package responses

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	responses map[string]Response
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{responses: make(map[string]Response)}
}

func (r *MemoryRepo) Create(ctx context.Context, response Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[response.ID] = response
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	response, ok := r.responses[id]
	if !ok {
		return Response{}, ErrNotFound
	}
	return response, nil
}

func (r *MemoryRepo) ListByVacancy(ctx context.Context, vacancyID string) ([]Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Response
	for _, response := range r.responses {
		if response.VacancyID == vacancyID {
			out = append(out, response)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID string) ([]Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Response
	for _, response := range r.responses {
		if response.ResumeID == resumeID {
			out = append(out, response)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) Exists(ctx context.Context, resumeID, vacancyID string, isInvitation bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, response := range r.responses {
		if response.ResumeID == resumeID && response.VacancyID == vacancyID && response.IsInvitation == isInvitation {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, id string, status Status) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	response, ok := r.responses[id]
	if !ok {
		return ErrNotFound
	}
	response.Status = status
	r.responses[id] = response
	return nil
}

func sortByCreatedDesc(items []Response) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
