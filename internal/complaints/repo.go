package complaints

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("complaint not found")
	ErrInvalidTarget = errors.New("invalid complaint target")
	ErrEmptyReason   = errors.New("complaint reason is required")
	ErrRateLimited   = errors.New("complaint rate limit exceeded")
)

// RateLimitError wraps ErrRateLimited with the remaining wait, so callers
// can surface a Retry-After without losing errors.Is checks.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string { return ErrRateLimited.Error() }

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Repo persists complaints and answers the questions the cooldown and
// daily cap checks need.
type Repo interface {
	Create(ctx context.Context, complaint Complaint) error
	LastByReporter(ctx context.Context, reporterID int64) (Complaint, error)
	CountByReporterSince(ctx context.Context, reporterID int64, since time.Time) (int, error)
	ListByTarget(ctx context.Context, targetType TargetType, targetID string) ([]Complaint, error)
}
