package vacancies

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"horeca-jobs-backend/internal/events"
	"horeca-jobs-backend/internal/shared/telemetry"
)

// Service owns vacancy lifecycle, expiry, and counters.
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

// CreateDraft persists a new draft vacancy for the owner.
func (s *Service) CreateDraft(ctx context.Context, vacancy Vacancy) (Vacancy, error) {
	if s == nil || s.Repo == nil {
		return Vacancy{}, errors.New("vacancies service not configured")
	}
	if vacancy.OwnerID == 0 {
		return Vacancy{}, errors.New("owner is required")
	}
	if !vacancy.ValidSalaryBand() {
		return Vacancy{}, ErrInvalidSalaryBand
	}
	if vacancy.PublicationDurationDays == 0 {
		vacancy.PublicationDurationDays = 30
	}
	if !validDuration(vacancy.PublicationDurationDays) {
		return Vacancy{}, ErrInvalidDuration
	}
	vacancy.ID = uuid.NewString()
	vacancy.Status = StatusDraft
	vacancy.ViewsCount = 0
	vacancy.ResponsesCount = 0
	vacancy.CreatedAt = s.Now()
	vacancy.PublishedAt = nil
	vacancy.ExpiresAt = nil
	if err := s.Repo.Create(ctx, vacancy); err != nil {
		return Vacancy{}, err
	}
	return vacancy, nil
}

// GetByID loads one vacancy.
func (s *Service) GetByID(ctx context.Context, id string) (Vacancy, error) {
	return s.Repo.GetByID(ctx, id)
}

// View loads a vacancy and, for non-owners, bumps the view counter.
func (s *Service) View(ctx context.Context, id string, viewerID int64) (Vacancy, error) {
	vacancy, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Vacancy{}, err
	}
	if viewerID != vacancy.OwnerID {
		if err := s.Repo.IncrementViews(ctx, id); err != nil {
			telemetry.Warn("vacancy.view_count", map[string]any{"vacancy_id": id, "error": err.Error()})
		} else {
			vacancy.ViewsCount++
		}
	}
	return vacancy, nil
}

// ListByOwner returns the owner's vacancies, newest first.
func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

// ListActive returns all currently published vacancies.
func (s *Service) ListActive(ctx context.Context) ([]Vacancy, error) {
	return s.Repo.ListActive(ctx)
}

// Update replaces the editable fields of an owned vacancy.
func (s *Service) Update(ctx context.Context, ownerID int64, vacancy Vacancy) (Vacancy, error) {
	existing, err := s.Repo.GetByID(ctx, vacancy.ID)
	if err != nil {
		return Vacancy{}, err
	}
	if existing.OwnerID != ownerID {
		return Vacancy{}, ErrNotFound
	}
	if !vacancy.ValidSalaryBand() {
		return Vacancy{}, ErrInvalidSalaryBand
	}
	if vacancy.PublicationDurationDays != 0 && !validDuration(vacancy.PublicationDurationDays) {
		return Vacancy{}, ErrInvalidDuration
	}
	if vacancy.PublicationDurationDays == 0 {
		vacancy.PublicationDurationDays = existing.PublicationDurationDays
	}
	vacancy.OwnerID = existing.OwnerID
	if err := s.Repo.Update(ctx, vacancy); err != nil {
		return Vacancy{}, err
	}
	return s.Repo.GetByID(ctx, vacancy.ID)
}

// Publish moves a draft (or restores an archived) vacancy to active.
// published_at is set only on the first publish; expires_at is derived from it.
func (s *Service) Publish(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	vacancy, err := s.transition(ctx, ownerID, id, StatusActive)
	if err != nil {
		return Vacancy{}, err
	}
	s.emit(ctx, events.New(events.KindVacancyPublished, vacancy.ID, vacancy.OwnerID))
	return vacancy, nil
}

// Pause temporarily hides an active vacancy.
func (s *Service) Pause(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	return s.transition(ctx, ownerID, id, StatusPaused)
}

// Resume re-activates a paused vacancy without touching published_at.
func (s *Service) Resume(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	return s.transition(ctx, ownerID, id, StatusActive)
}

// Archive hides a vacancy; counters are preserved.
func (s *Service) Archive(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	return s.transition(ctx, ownerID, id, StatusArchived)
}

// Restore re-activates an archived vacancy.
func (s *Service) Restore(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	return s.transition(ctx, ownerID, id, StatusActive)
}

// Close marks the position as filled. Terminal.
func (s *Service) Close(ctx context.Context, ownerID int64, id string) (Vacancy, error) {
	vacancy, err := s.transition(ctx, ownerID, id, StatusClosed)
	if err != nil {
		return Vacancy{}, err
	}
	s.emit(ctx, events.New(events.KindVacancyClosed, vacancy.ID, vacancy.OwnerID))
	return vacancy, nil
}

// ExpireDue archives every active vacancy whose publication window has passed.
// Returns the number archived.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	due, err := s.Repo.ListExpired(ctx, s.Now())
	if err != nil {
		return 0, err
	}
	archived := 0
	for _, vacancy := range due {
		if err := s.Repo.SetStatus(ctx, vacancy.ID, StatusArchived, nil, nil); err != nil {
			telemetry.Error("vacancy.expire", map[string]any{"vacancy_id": vacancy.ID, "error": err.Error()})
			continue
		}
		archived++
		s.emit(ctx, events.New(events.KindVacancyExpired, vacancy.ID, vacancy.OwnerID))
	}
	if archived > 0 {
		telemetry.Info("vacancy.expired_sweep", map[string]any{"archived": archived})
	}
	return archived, nil
}

func (s *Service) transition(ctx context.Context, ownerID int64, id string, to Status) (Vacancy, error) {
	vacancy, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Vacancy{}, err
	}
	if vacancy.OwnerID != ownerID {
		return Vacancy{}, ErrNotFound
	}
	if !canTransition(vacancy.Status, to) {
		return Vacancy{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, vacancy.Status, to)
	}
	if to == StatusActive && !vacancy.Complete() {
		return Vacancy{}, ErrIncomplete
	}

	var publishedAt, expiresAt *time.Time
	if to == StatusActive && vacancy.PublishedAt == nil {
		now := s.Now()
		publishedAt = &now
		expiry := now.AddDate(0, 0, vacancy.PublicationDurationDays)
		expiresAt = &expiry
	}
	if err := s.Repo.SetStatus(ctx, id, to, publishedAt, expiresAt); err != nil {
		return Vacancy{}, err
	}

	telemetry.Info("vacancy.transition", map[string]any{
		"vacancy_id": id,
		"from":       string(vacancy.Status),
		"to":         string(to),
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
