package vacancies

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the vacancy does not exist.
	ErrNotFound = errors.New("vacancy not found")

	// ErrInvalidTransition indicates a lifecycle move the state machine forbids.
	ErrInvalidTransition = errors.New("invalid vacancy status transition")

	// ErrIncomplete indicates required fields are missing for publication.
	ErrIncomplete = errors.New("vacancy is incomplete")

	// ErrInvalidSalaryBand indicates salary_min > salary_max.
	ErrInvalidSalaryBand = errors.New("salary_min exceeds salary_max")

	// ErrInvalidDuration indicates an unsupported publication window.
	ErrInvalidDuration = errors.New("unsupported publication duration")
)

// Repo persists vacancies.
type Repo interface {
	Create(ctx context.Context, vacancy Vacancy) error
	GetByID(ctx context.Context, id string) (Vacancy, error)
	Update(ctx context.Context, vacancy Vacancy) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error)
	ListActive(ctx context.Context) ([]Vacancy, error)
	// ListExpired returns active vacancies whose expires_at is at or before now.
	ListExpired(ctx context.Context, now time.Time) ([]Vacancy, error)
	// SetStatus updates only the lifecycle columns; counters are untouched.
	SetStatus(ctx context.Context, id string, status Status, publishedAt, expiresAt *time.Time) error
	IncrementViews(ctx context.Context, id string) error
	IncrementResponses(ctx context.Context, id string) error
}
