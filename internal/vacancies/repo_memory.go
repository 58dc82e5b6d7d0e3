package vacancies

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu        sync.RWMutex
	vacancies map[string]Vacancy
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{vacancies: make(map[string]Vacancy)}
}

func (r *MemoryRepo) Create(ctx context.Context, vacancy Vacancy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vacancies[vacancy.ID] = vacancy
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return Vacancy{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	vacancy, ok := r.vacancies[id]
	if !ok {
		return Vacancy{}, ErrNotFound
	}
	return vacancy, nil
}

func (r *MemoryRepo) Update(ctx context.Context, vacancy Vacancy) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.vacancies[vacancy.ID]
	if !ok {
		return ErrNotFound
	}
	vacancy.Status = existing.Status
	vacancy.ViewsCount = existing.ViewsCount
	vacancy.ResponsesCount = existing.ResponsesCount
	vacancy.CreatedAt = existing.CreatedAt
	vacancy.PublishedAt = existing.PublishedAt
	vacancy.ExpiresAt = existing.ExpiresAt
	r.vacancies[vacancy.ID] = vacancy
	return nil
}

func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Vacancy
	for _, vacancy := range r.vacancies {
		if vacancy.OwnerID == ownerID {
			out = append(out, vacancy)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) ListActive(ctx context.Context) ([]Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Vacancy
	for _, vacancy := range r.vacancies {
		if vacancy.Status == StatusActive {
			out = append(out, vacancy)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) ListExpired(ctx context.Context, now time.Time) ([]Vacancy, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Vacancy
	for _, vacancy := range r.vacancies {
		if vacancy.Status == StatusActive && vacancy.ExpiresAt != nil && !vacancy.ExpiresAt.After(now) {
			out = append(out, vacancy)
		}
	}
	sortByCreatedDesc(out)
	return out, nil
}

func (r *MemoryRepo) SetStatus(ctx context.Context, id string, status Status, publishedAt, expiresAt *time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	vacancy, ok := r.vacancies[id]
	if !ok {
		return ErrNotFound
	}
	vacancy.Status = status
	if vacancy.PublishedAt == nil && publishedAt != nil {
		vacancy.PublishedAt = publishedAt
	}
	if expiresAt != nil {
		vacancy.ExpiresAt = expiresAt
	}
	r.vacancies[id] = vacancy
	return nil
}

func (r *MemoryRepo) IncrementViews(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	vacancy, ok := r.vacancies[id]
	if !ok {
		return ErrNotFound
	}
	vacancy.ViewsCount++
	r.vacancies[id] = vacancy
	return nil
}

func (r *MemoryRepo) IncrementResponses(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	vacancy, ok := r.vacancies[id]
	if !ok {
		return ErrNotFound
	}
	vacancy.ResponsesCount++
	r.vacancies[id] = vacancy
	return nil
}

func sortByCreatedDesc(items []Vacancy) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
