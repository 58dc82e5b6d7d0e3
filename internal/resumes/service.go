package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"horeca-jobs-backend/internal/events"
	"horeca-jobs-backend/internal/shared/telemetry"
)

// Service owns resume lifecycle and counters.
type Service struct {
	Repo   Repo
	Events events.Publisher
	Now    func() time.Time
}

func NewService(repo Repo, publisher events.Publisher) *Service {
	return &Service{
		Repo:   repo,
		Events: publisher,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateDraft persists a new draft resume for the owner.
func (s *Service) CreateDraft(ctx context.Context, resume Resume) (Resume, error) {
	if s == nil || s.Repo == nil {
		return Resume{}, errors.New("resumes service not configured")
	}
	if resume.OwnerID == 0 {
		return Resume{}, errors.New("owner is required")
	}
	resume.ID = uuid.NewString()
	resume.Status = StatusDraft
	resume.ViewsCount = 0
	resume.ResponsesCount = 0
	resume.CreatedAt = s.Now()
	resume.PublishedAt = nil
	if err := s.Repo.Create(ctx, resume); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

// GetByID loads one resume.
func (s *Service) GetByID(ctx context.Context, id string) (Resume, error) {
	return s.Repo.GetByID(ctx, id)
}

// View loads a resume and, for non-owners, bumps the view counter.
func (s *Service) View(ctx context.Context, id string, viewerID int64) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if viewerID != resume.OwnerID {
		if err := s.Repo.IncrementViews(ctx, id); err != nil {
			telemetry.Warn("resume.view_count", map[string]any{"resume_id": id, "error": err.Error()})
		} else {
			resume.ViewsCount++
		}
	}
	return resume, nil
}

// ListByOwner returns the owner's resumes, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Resume, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// ListPublished returns every published resume.
func (s *Service) ListPublished(ctx context.Context) ([]Resume, error) {
	return s.Repo.ListPublished(ctx)
}

// Update replaces the editable fields of an owned resume.
func (s *Service) Update(ctx context.Context, ownerID int64, resume Resume) (Resume, error) {
	existing, err := s.Repo.GetByID(ctx, resume.ID)
	if err != nil {
		return Resume{}, err
	}
	if existing.OwnerID != ownerID {
		return Resume{}, ErrNotFound
	}
	resume.OwnerID = existing.OwnerID
	if err := s.Repo.Update(ctx, resume); err != nil {
		return Resume{}, err
	}
	return s.Repo.GetByID(ctx, resume.ID)
}

// Publish moves a draft or archived resume to published. published_at is set
// only on the first publish.
func (s *Service) Publish(ctx context.Context, ownerID int64, id string) (Resume, error) {
	resume, err := s.transition(ctx, ownerID, id, StatusPublished)
	if err != nil {
		return Resume{}, err
	}
	s.emit(ctx, events.New(events.KindResumePublished, resume.ID, resume.OwnerID))
	return resume, nil
}

// Archive hides a published resume; counters are preserved.
func (s *Service) Archive(ctx context.Context, ownerID int64, id string) (Resume, error) {
	return s.transition(ctx, ownerID, id, StatusArchived)
}

// Restore re-publishes an archived resume.
func (s *Service) Restore(ctx context.Context, ownerID int64, id string) (Resume, error) {
	return s.transition(ctx, ownerID, id, StatusPublished)
}

func (s *Service) transition(ctx context.Context, ownerID int64, id string, to Status) (Resume, error) {
	resume, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if resume.OwnerID != ownerID {
		return Resume{}, ErrNotFound
	}
	if !canTransition(resume.Status, to) {
		return Resume{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, resume.Status, to)
	}
	if to == StatusPublished && !resume.Complete() {
		return Resume{}, ErrIncomplete
	}

	var publishedAt *time.Time
	if to == StatusPublished && resume.PublishedAt == nil {
		now := s.Now()
		publishedAt = &now
	}
	if err := s.Repo.SetStatus(ctx, id, to, publishedAt); err != nil {
		return Resume{}, err
	}

	telemetry.Info("resume.transition", map[string]any{
		"resume_id": id,
		"from":      string(resume.Status),
		"to":        string(to),
	})
	return s.Repo.GetByID(ctx, id)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		telemetry.Warn("events.publish", map[string]any{
			"kind":      string(event.Kind),
			"entity_id": event.EntityID,
			"error":     err.Error(),
		})
	}
}
