package users

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu    sync.RWMutex
	users map[int64]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{users: make(map[int64]User)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, user User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[user.TelegramID]
	if ok {
		user.CreatedAt = existing.CreatedAt
		user.FirstResumeDone = existing.FirstResumeDone
		user.FirstVacancyDone = existing.FirstVacancyDone
	} else {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.TelegramID] = user
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, telegramID int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[telegramID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *MemoryRepo) MarkFirstDone(ctx context.Context, telegramID int64, entityType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[telegramID]
	if !ok {
		return ErrNotFound
	}
	switch entityType {
	case "resume":
		user.FirstResumeDone = true
	case "vacancy":
		user.FirstVacancyDone = true
	default:
		return fmt.Errorf("unknown entity type %q", entityType)
	}
	r.users[telegramID] = user
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, telegramID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, telegramID)
	return nil
}
