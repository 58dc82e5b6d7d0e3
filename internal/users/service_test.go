package users

import (
	"context"
	"errors"
	"testing"
)

func TestEnsureUserIdempotent(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, 42, "ivan", RoleApplicant)
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	second, err := svc.EnsureUser(ctx, 42, "ivan-renamed", RoleEmployer)
	if err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if second.Role != first.Role {
		t.Fatalf("existing account must keep its role, got %q", second.Role)
	}
}

func TestAbandonFirstDraftDeletesOnlyFirstTimers(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.EnsureUser(ctx, 7, "anna", RoleEmployer); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}

	deleted, err := svc.AbandonFirstDraft(ctx, 7, "vacancy")
	if err != nil {
		t.Fatalf("AbandonFirstDraft: %v", err)
	}
	if !deleted {
		t.Fatalf("expected first-time cancel to delete the account")
	}
	if _, err := repo.GetByID(ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected account gone, got %v", err)
	}
}

func TestAbandonFirstDraftNoopAfterFirstPublish(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.EnsureUser(ctx, 9, "oleg", RoleEmployer); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if err := svc.MarkFirstDone(ctx, 9, "vacancy"); err != nil {
		t.Fatalf("MarkFirstDone: %v", err)
	}

	deleted, err := svc.AbandonFirstDraft(ctx, 9, "vacancy")
	if err != nil {
		t.Fatalf("AbandonFirstDraft: %v", err)
	}
	if deleted {
		t.Fatalf("cancel after first publish must not delete the account")
	}
	if _, err := repo.GetByID(ctx, 9); err != nil {
		t.Fatalf("account should still exist: %v", err)
	}
}

func TestAbandonFirstDraftScopedPerEntityType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.EnsureUser(ctx, 11, "dina", RoleApplicant); err != nil {
		t.Fatalf("EnsureUser: %v", err)
	}
	if err := svc.MarkFirstDone(ctx, 11, "resume"); err != nil {
		t.Fatalf("MarkFirstDone: %v", err)
	}

	// First vacancy attempt is still "first" even with a published resume.
	deleted, err := svc.AbandonFirstDraft(ctx, 11, "vacancy")
	if err != nil {
		t.Fatalf("AbandonFirstDraft: %v", err)
	}
	if !deleted {
		t.Fatalf("first vacancy cancel should delete despite resume history")
	}
}
