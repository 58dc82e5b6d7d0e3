package responses

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the response does not exist.
	ErrNotFound = errors.New("response not found")

	// ErrInvalidTransition indicates a status move the state machine forbids.
	ErrInvalidTransition = errors.New("invalid response status transition")

	// ErrDuplicate indicates the resume already responded to this vacancy.
	ErrDuplicate = errors.New("response already exists")

	// ErrVacancyNotActive indicates the target vacancy is not accepting responses.
	ErrVacancyNotActive = errors.New("vacancy is not active")
)

// Repo persists responses.
type Repo interface {
	Create(ctx context.Context, response Response) error
	GetByID(ctx context.Context, id string) (Response, error)
	ListByVacancy(ctx context.Context, vacancyID string) ([]Response, error)
	ListByResume(ctx context.Context, resumeID string) ([]Response, error)
	Exists(ctx context.Context, resumeID, vacancyID string, isInvitation bool) (bool, error)
	SetStatus(ctx context.Context, id string, status Status) error
}
