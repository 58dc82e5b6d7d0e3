package forms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"horeca-jobs-backend/internal/shared/telemetry"
)

var (
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrNotAtConfirmStep  = errors.New("draft is not at the confirm step")
)

// Step is one field-collection stage of a flow. SkipIf steps are passed
// over in both directions, so back navigation mirrors the forward path.
type Step struct {
	Key      string
	Prompt   string
	Validate Validator
	SkipIf   func(Draft) bool
}

// Publisher materializes a completed draft into a persisted, published
// entity and returns its id.
type Publisher func(ctx context.Context, draft Draft) (string, error)

// Accounts is the slice of the user service the engine needs for the
// first-creation bookkeeping around cancel and confirm.
type Accounts interface {
	MarkFirstDone(ctx context.Context, telegramID int64, entityType string) error
	AbandonFirstDraft(ctx context.Context, telegramID int64, entityType string) (bool, error)
}

// Engine drives the step-by-step dialogue for every entity type it has a
// flow for.
type Engine struct {
	Store      DraftStore
	Flows      map[EntityType][]Step
	Publishers map[EntityType]Publisher
	Accounts   Accounts
	Now        func() time.Time
}

func NewEngine(store DraftStore, accounts Accounts) *Engine {
	return &Engine{
		Store: store,
		Flows: map[EntityType][]Step{
			EntityResume:  ResumeSteps(),
			EntityVacancy: VacancySteps(),
		},
		Publishers: map[EntityType]Publisher{},
		Accounts:   accounts,
		Now:        time.Now,
	}
}

// Start begins (or restarts) a draft for the owner and returns the first
// step to prompt. An existing draft is replaced.
func (e *Engine) Start(ctx context.Context, ownerID int64, entityType EntityType) (Step, error) {
	flow, err := e.flow(entityType)
	if err != nil {
		return Step{}, err
	}

	draft := newDraft(ownerID, entityType)
	draft.StepIndex = nextApplicable(flow, draft, 0)
	draft.UpdatedAt = e.now()
	if err := e.Store.Save(ctx, draft); err != nil {
		return Step{}, fmt.Errorf("start draft: %w", err)
	}
	return flow[draft.StepIndex], nil
}

// Resume returns the current step of an in-progress draft.
func (e *Engine) Resume(ctx context.Context, ownerID int64, entityType EntityType) (Step, Draft, error) {
	flow, err := e.flow(entityType)
	if err != nil {
		return Step{}, Draft{}, err
	}
	draft, err := e.Store.Load(ctx, ownerID, entityType)
	if err != nil {
		return Step{}, Draft{}, err
	}
	if draft.StepIndex >= len(flow) {
		draft.StepIndex = len(flow) - 1
	}
	return flow[draft.StepIndex], draft, nil
}

// Submit validates the value for the current step, stores it and advances
// to the next applicable step. A validation failure leaves the draft
// untouched so the same step can be re-prompted. done reports that the
// flow has reached its confirm step.
func (e *Engine) Submit(ctx context.Context, ownerID int64, entityType EntityType, value string) (next Step, done bool, err error) {
	flow, err := e.flow(entityType)
	if err != nil {
		return Step{}, false, err
	}
	draft, err := e.Store.Load(ctx, ownerID, entityType)
	if err != nil {
		return Step{}, false, err
	}

	current := flow[draft.StepIndex]
	if current.Validate != nil {
		normalized, err := current.Validate(value)
		if err != nil {
			return current, false, err
		}
		value = normalized
	}
	draft.Fields[current.Key] = value

	draft.StepIndex = nextApplicable(flow, draft, draft.StepIndex+1)
	draft.UpdatedAt = e.now()
	if err := e.Store.Save(ctx, draft); err != nil {
		return Step{}, false, fmt.Errorf("save draft: %w", err)
	}

	next = flow[draft.StepIndex]
	return next, draft.StepIndex == len(flow)-1, nil
}

// Back moves to the previous applicable step. The stored value of that
// step is kept so the prompt can show it. At the first step Back is a
// no-op.
func (e *Engine) Back(ctx context.Context, ownerID int64, entityType EntityType) (Step, Draft, error) {
	flow, err := e.flow(entityType)
	if err != nil {
		return Step{}, Draft{}, err
	}
	draft, err := e.Store.Load(ctx, ownerID, entityType)
	if err != nil {
		return Step{}, Draft{}, err
	}

	if prev := previousApplicable(flow, draft, draft.StepIndex-1); prev >= 0 {
		draft.StepIndex = prev
		draft.UpdatedAt = e.now()
		if err := e.Store.Save(ctx, draft); err != nil {
			return Step{}, Draft{}, fmt.Errorf("save draft: %w", err)
		}
	}
	return flow[draft.StepIndex], draft, nil
}

// Cancel deletes the draft. When this was the owner's first-ever creation
// attempt for the entity type, the account itself is removed. deleted
// reports whether that happened.
func (e *Engine) Cancel(ctx context.Context, ownerID int64, entityType EntityType) (deleted bool, err error) {
	if _, err := e.flow(entityType); err != nil {
		return false, err
	}
	if err := e.Store.Delete(ctx, ownerID, entityType); err != nil {
		return false, fmt.Errorf("delete draft: %w", err)
	}
	if e.Accounts == nil {
		return false, nil
	}
	deleted, err = e.Accounts.AbandonFirstDraft(ctx, ownerID, string(entityType))
	if err != nil {
		telemetry.Warn("forms.cancel.abandon_failed", map[string]any{
			"ownerId":    ownerID,
			"entityType": string(entityType),
			"error":      err.Error(),
		})
		return false, nil
	}
	return deleted, nil
}

// Confirm materializes the draft through the registered publisher, marks
// the owner's first creation as done and deletes the draft. It only
// succeeds at the confirm step.
func (e *Engine) Confirm(ctx context.Context, ownerID int64, entityType EntityType) (string, error) {
	flow, err := e.flow(entityType)
	if err != nil {
		return "", err
	}
	draft, err := e.Store.Load(ctx, ownerID, entityType)
	if err != nil {
		return "", err
	}
	if draft.StepIndex != len(flow)-1 {
		return "", ErrNotAtConfirmStep
	}

	publish, ok := e.Publishers[entityType]
	if !ok {
		return "", fmt.Errorf("no publisher for entity type %q", entityType)
	}
	entityID, err := publish(ctx, draft)
	if err != nil {
		return "", fmt.Errorf("publish draft: %w", err)
	}

	if e.Accounts != nil {
		if err := e.Accounts.MarkFirstDone(ctx, ownerID, string(entityType)); err != nil {
			telemetry.Warn("forms.confirm.mark_first_failed", map[string]any{
				"ownerId":    ownerID,
				"entityType": string(entityType),
				"error":      err.Error(),
			})
		}
	}
	if err := e.Store.Delete(ctx, ownerID, entityType); err != nil {
		telemetry.Warn("forms.confirm.draft_delete_failed", map[string]any{
			"ownerId": ownerID,
			"error":   err.Error(),
		})
	}
	return entityID, nil
}

func (e *Engine) flow(entityType EntityType) ([]Step, error) {
	flow, ok := e.Flows[entityType]
	if !ok || len(flow) == 0 {
		return nil, ErrUnknownEntityType
	}
	return flow, nil
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// nextApplicable returns the first non-skipped step index at or after
// from. The terminal step is never skippable.
func nextApplicable(flow []Step, draft Draft, from int) int {
	for i := from; i < len(flow)-1; i++ {
		if flow[i].SkipIf == nil || !flow[i].SkipIf(draft) {
			return i
		}
	}
	return len(flow) - 1
}

// previousApplicable returns the nearest non-skipped step index at or
// before from, or -1 when already at the start.
func previousApplicable(flow []Step, draft Draft, from int) int {
	for i := from; i >= 0; i-- {
		if flow[i].SkipIf == nil || !flow[i].SkipIf(draft) {
			return i
		}
	}
	return -1
}
