package users

import (
	"context"
	"errors"

	"horeca-jobs-backend/internal/shared/telemetry"
)

// Service owns account lifecycle, including the first-draft abandonment rule.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureUser registers the Telegram identity on first contact.
func (s *Service) EnsureUser(ctx context.Context, telegramID int64, username string, role Role) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if telegramID == 0 {
		return User{}, errors.New("telegram id is required")
	}
	existing, err := s.Repo.GetByID(ctx, telegramID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}
	user := User{TelegramID: telegramID, Username: username, Role: role}
	if user.Role == "" {
		user.Role = RoleApplicant
	}
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, telegramID)
}

func (s *Service) GetByID(ctx context.Context, telegramID int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	return s.Repo.GetByID(ctx, telegramID)
}

// SetRole switches the account between applicant and employer. First-done
// flags and created_at survive the switch.
func (s *Service) SetRole(ctx context.Context, telegramID int64, role Role) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if role != RoleApplicant && role != RoleEmployer {
		return User{}, errors.New("unknown role")
	}
	user, err := s.Repo.GetByID(ctx, telegramID)
	if err != nil {
		return User{}, err
	}
	user.Role = role
	if err := s.Repo.Upsert(ctx, user); err != nil {
		return User{}, err
	}
	return s.Repo.GetByID(ctx, telegramID)
}

// MarkFirstDone records that the owner completed their first creation of the
// given entity type; subsequent cancellations no longer delete the account.
func (s *Service) MarkFirstDone(ctx context.Context, telegramID int64, entityType string) error {
	if s == nil || s.Repo == nil {
		return errors.New("users service not configured")
	}
	return s.Repo.MarkFirstDone(ctx, telegramID, entityType)
}

// AbandonFirstDraft handles a cancellation during the owner's very first
// creation attempt: the account itself is deleted. For owners past their
// first creation this is a no-op.
//
// Kept as an explicit transition rather than a side effect of a generic
// cancel path; see DESIGN.md for the product decision behind it.
func (s *Service) AbandonFirstDraft(ctx context.Context, telegramID int64, entityType string) (deleted bool, err error) {
	if s == nil || s.Repo == nil {
		return false, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByID(ctx, telegramID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	var first bool
	switch entityType {
	case "resume":
		first = !user.FirstResumeDone
	case "vacancy":
		first = !user.FirstVacancyDone
	default:
		return false, errors.New("unknown entity type")
	}
	if !first {
		return false, nil
	}

	if err := s.Repo.Delete(ctx, telegramID); err != nil {
		return false, err
	}
	telemetry.Warn("user.abandoned_first_draft", map[string]any{
		"telegram_id": telegramID,
		"entity_type": entityType,
	})
	return true, nil
}
