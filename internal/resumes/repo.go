package resumes

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the resume does not exist.
	ErrNotFound = errors.New("resume not found")

	// ErrInvalidTransition indicates a lifecycle move the state machine forbids.
	ErrInvalidTransition = errors.New("invalid resume status transition")

	// ErrIncomplete indicates required fields are missing for publication.
	ErrIncomplete = errors.New("resume is incomplete")
)

// Repo persists resumes.
type Repo interface {
	Create(ctx context.Context, resume Resume) error
	GetByID(ctx context.Context, id string) (Resume, error)
	Update(ctx context.Context, resume Resume) error
	ListByOwner(ctx context.Context, ownerID int64) ([]Resume, error)
	ListPublished(ctx context.Context) ([]Resume, error)
	// SetStatus updates only the lifecycle columns; counters are untouched.
	SetStatus(ctx context.Context, id string, status Status, publishedAt *time.Time) error
	IncrementViews(ctx context.Context, id string) error
	IncrementResponses(ctx context.Context, id string) error
}
