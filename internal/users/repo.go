package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("user not found")
)

// Repo persists Telegram accounts.
type Repo interface {
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, telegramID int64) (User, error)
	MarkFirstDone(ctx context.Context, telegramID int64, entityType string) error
	Delete(ctx context.Context, telegramID int64) error
}
