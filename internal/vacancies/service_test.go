package vacancies

import (
	"context"
	"errors"
	"testing"
	"time"

	"horeca-jobs-backend/internal/events"
)

type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestService() (*Service, *MemoryRepo, *capturingPublisher) {
	repo := NewMemoryRepo()
	pub := &capturingPublisher{}
	svc := NewService(repo, pub)
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, repo, pub
}

func draftVacancy(t *testing.T, svc *Service, duration int) Vacancy {
	t.Helper()
	vacancy, err := svc.CreateDraft(context.Background(), Vacancy{
		OwnerID:                 7,
		Position:                "Повар",
		PositionCategory:        "kitchen",
		Description:             "Горячий цех, смены 2/2",
		PublicationDurationDays: duration,
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	return vacancy
}

func TestPublishDerivesExpiry(t *testing.T) {
	svc, _, pub := newTestService()
	ctx := context.Background()
	vacancy := draftVacancy(t, svc, 30)

	published, err := svc.Publish(ctx, 7, vacancy.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.PublishedAt == nil || published.ExpiresAt == nil {
		t.Fatalf("expected published_at and expires_at to be set")
	}
	want := published.PublishedAt.AddDate(0, 0, 30)
	if !published.ExpiresAt.Equal(want) {
		t.Fatalf("expires_at = %v, want %v", published.ExpiresAt, want)
	}
	if len(pub.published) != 1 || pub.published[0].Kind != events.KindVacancyPublished {
		t.Fatalf("expected one published event, got %v", pub.published)
	}
}

func TestPauseResumeKeepsPublishedAt(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	vacancy := draftVacancy(t, svc, 14)

	published, err := svc.Publish(ctx, 7, vacancy.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	first := *published.PublishedAt

	if _, err := svc.Pause(ctx, 7, vacancy.ID); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	resumed, err := svc.Resume(ctx, 7, vacancy.ID)
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !resumed.PublishedAt.Equal(first) {
		t.Fatalf("resume must not reset published_at")
	}
}

func TestClosedIsTerminal(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	vacancy := draftVacancy(t, svc, 7)

	if _, err := svc.Publish(ctx, 7, vacancy.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if _, err := svc.Close(ctx, 7, vacancy.ID); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := svc.Publish(ctx, 7, vacancy.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal closed state, got %v", err)
	}
	if _, err := svc.Archive(ctx, 7, vacancy.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal closed state, got %v", err)
	}
}

func TestArchiveAndRestorePreservesCounters(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	vacancy := draftVacancy(t, svc, 30)

	if _, err := svc.Publish(ctx, 7, vacancy.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for i := 0; i < 5; i++ {
		if err := repo.IncrementViews(ctx, vacancy.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}

	archived, err := svc.Archive(ctx, 7, vacancy.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if archived.ViewsCount != 5 {
		t.Fatalf("views lost on archive: %d", archived.ViewsCount)
	}

	restored, err := svc.Restore(ctx, 7, vacancy.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Status != StatusActive || restored.ViewsCount != 5 {
		t.Fatalf("restore lost state: %+v", restored)
	}
}

func TestCreateDraftValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	low, high := int64(90000), int64(50000)
	if _, err := svc.CreateDraft(ctx, Vacancy{
		OwnerID:   7,
		SalaryMin: &low,
		SalaryMax: &high,
	}); !errors.Is(err, ErrInvalidSalaryBand) {
		t.Fatalf("expected ErrInvalidSalaryBand, got %v", err)
	}

	if _, err := svc.CreateDraft(ctx, Vacancy{
		OwnerID:                 7,
		PublicationDurationDays: 45,
	}); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
}

func TestExpireDueArchivesPastWindow(t *testing.T) {
	svc, repo, pub := newTestService()
	ctx := context.Background()
	vacancy := draftVacancy(t, svc, 7)

	if _, err := svc.Publish(ctx, 7, vacancy.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Jump the clock past the publication window.
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	}
	archived, err := svc.ExpireDue(ctx)
	if err != nil {
		t.Fatalf("ExpireDue: %v", err)
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived, got %d", archived)
	}
	got, err := repo.GetByID(ctx, vacancy.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusArchived {
		t.Fatalf("expected archived, got %s", got.Status)
	}
	last := pub.published[len(pub.published)-1]
	if last.Kind != events.KindVacancyExpired {
		t.Fatalf("expected expired event, got %s", last.Kind)
	}
}
