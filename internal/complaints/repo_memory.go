package complaints

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo used in tests and local runs.
type MemoryRepo struct {
	mu    sync.RWMutex
	items []Complaint
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(_ context.Context, complaint Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, complaint)
	return nil
}

func (r *MemoryRepo) LastByReporter(_ context.Context, reporterID int64) (Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		last  Complaint
		found bool
	)
	for _, item := range r.items {
		if item.ReporterID != reporterID {
			continue
		}
		if !found || item.CreatedAt.After(last.CreatedAt) {
			last = item
			found = true
		}
	}
	if !found {
		return Complaint{}, ErrNotFound
	}
	return last, nil
}

func (r *MemoryRepo) CountByReporterSince(_ context.Context, reporterID int64, since time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, item := range r.items {
		if item.ReporterID == reporterID && !item.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepo) ListByTarget(_ context.Context, targetType TargetType, targetID string) ([]Complaint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var items []Complaint
	for _, item := range r.items {
		if item.TargetType == targetType && item.TargetID == targetID {
			items = append(items, item)
		}
	}
	return items, nil
}
