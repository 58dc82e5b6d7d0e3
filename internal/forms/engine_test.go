package forms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeAccounts struct {
	abandoned  []string
	abandonRet bool
	markedDone []string
}

func (f *fakeAccounts) MarkFirstDone(_ context.Context, _ int64, entityType string) error {
	f.markedDone = append(f.markedDone, entityType)
	return nil
}

func (f *fakeAccounts) AbandonFirstDraft(_ context.Context, _ int64, entityType string) (bool, error) {
	f.abandoned = append(f.abandoned, entityType)
	return f.abandonRet, nil
}

func newTestEngine() (*Engine, *fakeAccounts) {
	accounts := &fakeAccounts{}
	engine := NewEngine(NewMemoryStore(), accounts)
	engine.Now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return engine, accounts
}

func TestSubmitAdvancesAndStores(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	first, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "position", first.Key)

	next, done, err := engine.Submit(ctx, 100, EntityResume, "бариста")
	require.NoError(t, err)
	require.False(t, done)
	require.Equal(t, "salary", next.Key)

	_, draft, err := engine.Resume(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "бариста", draft.Field("position"))
}

func TestValidationFailureKeepsState(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)

	step, _, err := engine.Submit(ctx, 100, EntityResume, "x")
	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "position", step.Key)

	current, draft, err := engine.Resume(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "position", current.Key)
	require.Empty(t, draft.Field("position"))
}

func TestBackThenResubmitRoundTrip(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)
	_, _, err = engine.Submit(ctx, 100, EntityResume, "бариста")
	require.NoError(t, err)
	_, _, err = engine.Submit(ctx, 100, EntityResume, "60000")
	require.NoError(t, err)

	_, before, err := engine.Resume(ctx, 100, EntityResume)
	require.NoError(t, err)

	step, draft, err := engine.Back(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "salary", step.Key)
	require.Equal(t, "60000", draft.Field("salary"), "back keeps the stored value")

	_, _, err = engine.Submit(ctx, 100, EntityResume, "60000")
	require.NoError(t, err)

	_, after, err := engine.Resume(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, before.Fields, after.Fields)
	require.Equal(t, before.StepIndex, after.StepIndex)
}

func TestBackAtFirstStepStays(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)

	step, _, err := engine.Back(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "position", step.Key)
}

func TestSalaryTypeSkippedWhenSalaryOmitted(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)
	_, _, err = engine.Submit(ctx, 100, EntityResume, "бариста")
	require.NoError(t, err)

	next, _, err := engine.Submit(ctx, 100, EntityResume, "-")
	require.NoError(t, err)
	require.Equal(t, "city", next.Key, "salary_type must be skipped without a salary")
}

func TestCuisinesOnlyForCooks(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityVacancy)
	require.NoError(t, err)

	next, _, err := engine.Submit(ctx, 100, EntityVacancy, "официант")
	require.NoError(t, err)
	require.Equal(t, "position", next.Key)
	next, _, err = engine.Submit(ctx, 100, EntityVacancy, "старший официант")
	require.NoError(t, err)
	require.Equal(t, "salary", next.Key, "cuisines must be skipped for non-cooks")

	_, err = engine.Start(ctx, 200, EntityVacancy)
	require.NoError(t, err)
	_, _, err = engine.Submit(ctx, 200, EntityVacancy, CategoryCook)
	require.NoError(t, err)
	next, _, err = engine.Submit(ctx, 200, EntityVacancy, "су-шеф")
	require.NoError(t, err)
	require.Equal(t, "cuisines", next.Key)
}

func TestCancelDeletesDraft(t *testing.T) {
	engine, accounts := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)

	deleted, err := engine.Cancel(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, []string{"resume"}, accounts.abandoned)

	_, _, err = engine.Resume(ctx, 100, EntityResume)
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestCancelReportsAccountDeletion(t *testing.T) {
	engine, accounts := newTestEngine()
	accounts.abandonRet = true
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityVacancy)
	require.NoError(t, err)

	deleted, err := engine.Cancel(ctx, 100, EntityVacancy)
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestConfirmRequiresTerminalStep(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)

	_, err = engine.Confirm(ctx, 100, EntityResume)
	require.ErrorIs(t, err, ErrNotAtConfirmStep)
}

func TestConfirmPublishesAndCleansUp(t *testing.T) {
	engine, accounts := newTestEngine()
	ctx := context.Background()

	var published Draft
	engine.Publishers[EntityResume] = func(_ context.Context, draft Draft) (string, error) {
		published = draft
		return "resume-1", nil
	}

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)
	for _, value := range []string{"бариста", "60000", "net", "Москва", "да", "эспрессо, латте-арт", "-", "-", "-"} {
		_, _, err = engine.Submit(ctx, 100, EntityResume, value)
		require.NoError(t, err)
	}

	id, err := engine.Confirm(ctx, 100, EntityResume)
	require.NoError(t, err)
	require.Equal(t, "resume-1", id)
	require.Equal(t, "бариста", published.Field("position"))
	require.Equal(t, []string{"resume"}, accounts.markedDone)

	_, _, err = engine.Resume(ctx, 100, EntityResume)
	require.ErrorIs(t, err, ErrDraftNotFound)
}

func TestConfirmFailureKeepsDraft(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	engine.Publishers[EntityResume] = func(context.Context, Draft) (string, error) {
		return "", errors.New("storage down")
	}

	_, err := engine.Start(ctx, 100, EntityResume)
	require.NoError(t, err)
	for _, value := range []string{"бариста", "-", "Москва", "нет", "эспрессо", "-", "-", "-"} {
		_, _, err = engine.Submit(ctx, 100, EntityResume, value)
		require.NoError(t, err)
	}

	_, err = engine.Confirm(ctx, 100, EntityResume)
	require.Error(t, err)

	_, _, err = engine.Resume(ctx, 100, EntityResume)
	require.NoError(t, err, "draft survives a failed publish")
}
