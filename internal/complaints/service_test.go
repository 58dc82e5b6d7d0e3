package complaints

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestService(now time.Time) (*Service, *clock) {
	c := &clock{t: now}
	svc := NewService(NewMemoryRepo())
	svc.Now = c.now
	return svc, c
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestFileRecordsComplaint(t *testing.T) {
	svc, _ := newTestService(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	got, err := svc.File(context.Background(), 100, TargetVacancy, "v1", "  spam listing  ")
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected generated id")
	}
	if got.Reason != "spam listing" {
		t.Fatalf("reason = %q, want trimmed", got.Reason)
	}

	items, err := svc.ListByTarget(context.Background(), TargetVacancy, "v1")
	if err != nil {
		t.Fatalf("ListByTarget: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d complaints, want 1", len(items))
	}
}

func TestFileEnforcesCooldown(t *testing.T) {
	svc, clk := newTestService(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := svc.File(ctx, 100, TargetResume, "r1", "fake profile"); err != nil {
		t.Fatalf("first File: %v", err)
	}

	clk.advance(3 * time.Minute)
	_, err := svc.File(ctx, 100, TargetResume, "r2", "another")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	var limited *RateLimitError
	if !errors.As(err, &limited) {
		t.Fatalf("err = %v, want *RateLimitError", err)
	}
	if limited.RetryAfter != 7*time.Minute {
		t.Fatalf("RetryAfter = %v, want 7m", limited.RetryAfter)
	}

	clk.advance(7 * time.Minute)
	if _, err := svc.File(ctx, 100, TargetResume, "r2", "another"); err != nil {
		t.Fatalf("File after cooldown: %v", err)
	}
}

func TestCooldownIsPerReporter(t *testing.T) {
	svc, _ := newTestService(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := svc.File(ctx, 100, TargetResume, "r1", "fake"); err != nil {
		t.Fatalf("reporter 100: %v", err)
	}
	if _, err := svc.File(ctx, 200, TargetResume, "r1", "fake"); err != nil {
		t.Fatalf("reporter 200 should not share cooldown: %v", err)
	}
}

func TestFileEnforcesDailyCap(t *testing.T) {
	svc, clk := newTestService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < DailyCap; i++ {
		if _, err := svc.File(ctx, 100, TargetVacancy, "v1", "spam"); err != nil {
			t.Fatalf("File %d: %v", i, err)
		}
		clk.advance(11 * time.Minute)
	}

	_, err := svc.File(ctx, 100, TargetVacancy, "v1", "spam")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited after %d complaints", err, DailyCap)
	}

	clk.advance(24 * time.Hour)
	if _, err := svc.File(ctx, 100, TargetVacancy, "v1", "spam"); err != nil {
		t.Fatalf("File after window reset: %v", err)
	}
}

func TestFileValidatesInput(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	if _, err := svc.File(ctx, 100, TargetType("user"), "u1", "spam"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("bad target type: err = %v", err)
	}
	if _, err := svc.File(ctx, 100, TargetResume, "", "spam"); !errors.Is(err, ErrInvalidTarget) {
		t.Fatalf("empty target id: err = %v", err)
	}
	if _, err := svc.File(ctx, 100, TargetResume, "r1", "   "); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("blank reason: err = %v", err)
	}
}
