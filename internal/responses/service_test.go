package responses

import (
	"context"
	"errors"
	"testing"
	"time"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

type fixture struct {
	svc         *Service
	resumeRepo  *resumes.MemoryRepo
	vacancyRepo *vacancies.MemoryRepo
	resumeID    string
	vacancyID   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	resumeRepo := resumes.NewMemoryRepo()
	vacancyRepo := vacancies.NewMemoryRepo()
	svc := NewService(NewMemoryRepo(), resumeRepo, vacancyRepo)
	svc.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

	resume := resumes.Resume{ID: "r1", OwnerID: 100, Position: "Бариста", City: "Москва", Status: resumes.StatusPublished}
	if err := resumeRepo.Create(ctx, resume); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	vacancy := vacancies.Vacancy{ID: "v1", OwnerID: 200, Position: "Бариста", Status: vacancies.StatusActive}
	if err := vacancyRepo.Create(ctx, vacancy); err != nil {
		t.Fatalf("seed vacancy: %v", err)
	}

	return &fixture{
		svc:         svc,
		resumeRepo:  resumeRepo,
		vacancyRepo: vacancyRepo,
		resumeID:    "r1",
		vacancyID:   "v1",
	}
}

func TestApplyCreatesPendingAndCounts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	response, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, "Здравствуйте!")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if response.Status != StatusPending || response.IsInvitation {
		t.Fatalf("unexpected response: %+v", response)
	}

	vacancy, err := f.vacancyRepo.GetByID(ctx, f.vacancyID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if vacancy.ResponsesCount != 1 {
		t.Fatalf("expected vacancy responses_count 1, got %d", vacancy.ResponsesCount)
	}
}

func TestApplyRejectsInactiveVacancy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.vacancyRepo.SetStatus(ctx, f.vacancyID, vacancies.StatusPaused, nil, nil); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if _, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, ""); !errors.Is(err, ErrVacancyNotActive) {
		t.Fatalf("expected ErrVacancyNotActive, got %v", err)
	}
}

func TestApplyRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, ""); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, ""); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestApplyRequiresResumeOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Apply(ctx, 999, f.resumeID, f.vacancyID, ""); !errors.Is(err, resumes.ErrNotFound) {
		t.Fatalf("expected resume not found for foreign owner, got %v", err)
	}
}

func TestInviteCountsOnResume(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	response, err := f.svc.Invite(ctx, 200, f.resumeID, f.vacancyID, "Приглашаем на собеседование")
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if !response.IsInvitation {
		t.Fatalf("expected invitation")
	}

	resume, err := f.resumeRepo.GetByID(ctx, f.resumeID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if resume.ResponsesCount != 1 {
		t.Fatalf("expected resume responses_count 1, got %d", resume.ResponsesCount)
	}
}

func TestNoBackwardTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	response, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if _, err := f.svc.Transition(ctx, response.ID, StatusAccepted); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	for _, to := range []Status{StatusPending, StatusViewed, StatusInvited, StatusRejected} {
		if _, err := f.svc.Transition(ctx, response.ID, to); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected accepted to be terminal for %s, got %v", to, err)
		}
	}
}

func TestMarkViewedIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	response, err := f.svc.Apply(ctx, 100, f.resumeID, f.vacancyID, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	viewed, err := f.svc.MarkViewed(ctx, response.ID)
	if err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}
	if viewed.Status != StatusViewed {
		t.Fatalf("expected viewed, got %s", viewed.Status)
	}

	if _, err := f.svc.Transition(ctx, response.ID, StatusInvited); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	again, err := f.svc.MarkViewed(ctx, response.ID)
	if err != nil {
		t.Fatalf("MarkViewed: %v", err)
	}
	if again.Status != StatusInvited {
		t.Fatalf("MarkViewed must not regress status, got %s", again.Status)
	}
}
