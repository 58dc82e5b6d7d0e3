package complaints

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Cooldown is the minimum gap between two complaints from one reporter.
	Cooldown = 10 * time.Minute
	// DailyCap is the maximum number of complaints per reporter per rolling day.
	DailyCap = 5
)

// Service enforces anti-abuse limits around complaint creation.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// File records a complaint after the cooldown and daily cap checks pass.
func (s *Service) File(ctx context.Context, reporterID int64, targetType TargetType, targetID, reason string) (Complaint, error) {
	if s.Repo == nil {
		return Complaint{}, fmt.Errorf("complaints service: repo is not configured")
	}
	if !targetType.Valid() || targetID == "" {
		return Complaint{}, ErrInvalidTarget
	}
	if strings.TrimSpace(reason) == "" {
		return Complaint{}, ErrEmptyReason
	}

	now := s.now()

	last, err := s.Repo.LastByReporter(ctx, reporterID)
	switch {
	case err == nil:
		if wait := Cooldown - now.Sub(last.CreatedAt); wait > 0 {
			return Complaint{}, &RateLimitError{RetryAfter: wait}
		}
	case errors.Is(err, ErrNotFound):
		// first complaint from this reporter
	default:
		return Complaint{}, fmt.Errorf("load last complaint: %w", err)
	}

	count, err := s.Repo.CountByReporterSince(ctx, reporterID, now.Add(-24*time.Hour))
	if err != nil {
		return Complaint{}, fmt.Errorf("count complaints: %w", err)
	}
	if count >= DailyCap {
		return Complaint{}, &RateLimitError{RetryAfter: 24 * time.Hour}
	}

	complaint := Complaint{
		ID:         uuid.NewString(),
		ReporterID: reporterID,
		TargetType: targetType,
		TargetID:   targetID,
		Reason:     strings.TrimSpace(reason),
		CreatedAt:  now,
	}
	if err := s.Repo.Create(ctx, complaint); err != nil {
		return Complaint{}, fmt.Errorf("create complaint: %w", err)
	}
	return complaint, nil
}

// ListByTarget returns complaints filed against one entity.
func (s *Service) ListByTarget(ctx context.Context, targetType TargetType, targetID string) ([]Complaint, error) {
	if !targetType.Valid() || targetID == "" {
		return nil, ErrInvalidTarget
	}
	return s.Repo.ListByTarget(ctx, targetType, targetID)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
