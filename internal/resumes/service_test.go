package resumes

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

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	svc := NewService(repo, nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	svc.Now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Minute)
	}
	return svc, repo
}

func draftResume(t *testing.T, svc *Service) Resume {
	t.Helper()
	resume, err := svc.CreateDraft(context.Background(), Resume{
		OwnerID:  42,
		Position: "Бариста",
		City:     "Москва",
	})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	return resume
}

func TestPublishSetsPublishedAtOnce(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := draftResume(t, svc)

	published, err := svc.Publish(ctx, 42, resume.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatalf("expected published_at to be set")
	}
	first := *published.PublishedAt

	archived, err := svc.Archive(ctx, 42, resume.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if archived.Status != StatusArchived {
		t.Fatalf("expected archived, got %s", archived.Status)
	}

	restored, err := svc.Restore(ctx, 42, resume.ID)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.PublishedAt == nil || !restored.PublishedAt.Equal(first) {
		t.Fatalf("republish must not reset published_at: %v vs %v", restored.PublishedAt, first)
	}
}

func TestPublishEmitsEvent(t *testing.T) {
	svc, _ := newTestService()
	pub := &capturingPublisher{}
	svc.Events = pub
	ctx := context.Background()
	resume := draftResume(t, svc)

	published, err := svc.Publish(ctx, 42, resume.ID)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0].Kind != events.KindResumePublished {
		t.Fatalf("expected one resume.published event, got %+v", pub.published)
	}
	if pub.published[0].EntityID != published.ID || pub.published[0].OwnerID != 42 {
		t.Fatalf("event carries wrong identifiers: %+v", pub.published[0])
	}
}

func TestArchivePreservesCounters(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	resume := draftResume(t, svc)

	if _, err := svc.Publish(ctx, 42, resume.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := repo.IncrementViews(ctx, resume.ID); err != nil {
			t.Fatalf("IncrementViews: %v", err)
		}
	}
	if err := repo.IncrementResponses(ctx, resume.ID); err != nil {
		t.Fatalf("IncrementResponses: %v", err)
	}

	archived, err := svc.Archive(ctx, 42, resume.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if archived.ViewsCount != 3 || archived.ResponsesCount != 1 {
		t.Fatalf("counters lost on archive: views=%d responses=%d", archived.ViewsCount, archived.ResponsesCount)
	}
}

func TestInvalidTransitions(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := draftResume(t, svc)

	// draft -> archived is not an edge
	if _, err := svc.Archive(ctx, 42, resume.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	if _, err := svc.Publish(ctx, 42, resume.ID); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// publish while published
	if _, err := svc.Publish(ctx, 42, resume.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestPublishRequiresCompleteness(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume, err := svc.CreateDraft(ctx, Resume{OwnerID: 42, Position: "Бариста"})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	if _, err := svc.Publish(ctx, 42, resume.ID); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
}

func TestViewCountsOnlyNonOwners(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := draftResume(t, svc)

	if _, err := svc.View(ctx, resume.ID, 42); err != nil {
		t.Fatalf("View: %v", err)
	}
	seen, err := svc.View(ctx, resume.ID, 777)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if seen.ViewsCount != 1 {
		t.Fatalf("expected 1 view from stranger only, got %d", seen.ViewsCount)
	}
}

func TestTransitionHidesForeignResumes(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	resume := draftResume(t, svc)

	if _, err := svc.Publish(ctx, 999, resume.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}
