package responses

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/telemetry"
	"horeca-jobs-backend/internal/vacancies"
)

// Service owns response creation and its status machine. Both referenced
// entities must exist, and the vacancy must be active, at creation time.
type Service struct {
	Repo      Repo
	Resumes   resumes.Repo
	Vacancies vacancies.Repo
	Now       func() time.Time
}

func NewService(repo Repo, resumeRepo resumes.Repo, vacancyRepo vacancies.Repo) *Service {
	return &Service{
		Repo:      repo,
		Resumes:   resumeRepo,
		Vacancies: vacancyRepo,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Apply creates an application from a resume to a vacancy. Bumps the
// vacancy's responses counter.
func (s *Service) Apply(ctx context.Context, applicantID int64, resumeID, vacancyID, coverLetter string) (Response, error) {
	resume, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return Response{}, err
	}
	if resume.OwnerID != applicantID {
		return Response{}, resumes.ErrNotFound
	}
	return s.create(ctx, resumeID, vacancyID, coverLetter, false)
}

// Invite creates an employer invitation for a resume. Bumps the resume's
// responses counter.
func (s *Service) Invite(ctx context.Context, employerID int64, resumeID, vacancyID, message string) (Response, error) {
	vacancy, err := s.Vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return Response{}, err
	}
	if vacancy.OwnerID != employerID {
		return Response{}, vacancies.ErrNotFound
	}
	return s.create(ctx, resumeID, vacancyID, message, true)
}

func (s *Service) create(ctx context.Context, resumeID, vacancyID, message string, isInvitation bool) (Response, error) {
	if _, err := s.Resumes.GetByID(ctx, resumeID); err != nil {
		return Response{}, err
	}
	vacancy, err := s.Vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return Response{}, err
	}
	if vacancy.Status != vacancies.StatusActive {
		return Response{}, ErrVacancyNotActive
	}

	exists, err := s.Repo.Exists(ctx, resumeID, vacancyID, isInvitation)
	if err != nil {
		return Response{}, err
	}
	if exists {
		return Response{}, ErrDuplicate
	}

	response := Response{
		ID:           uuid.NewString(),
		ResumeID:     resumeID,
		VacancyID:    vacancyID,
		Status:       StatusPending,
		IsInvitation: isInvitation,
		Message:      message,
		CreatedAt:    s.Now(),
	}
	if err := s.Repo.Create(ctx, response); err != nil {
		return Response{}, err
	}

	if isInvitation {
		err = s.Resumes.IncrementResponses(ctx, resumeID)
	} else {
		err = s.Vacancies.IncrementResponses(ctx, vacancyID)
	}
	if err != nil {
		telemetry.Warn("response.counter", map[string]any{"response_id": response.ID, "error": err.Error()})
	}

	return response, nil
}

// GetByID loads one response.
func (s *Service) GetByID(ctx context.Context, id string) (Response, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByVacancy returns responses to a vacancy, newest first. Only the
// vacancy owner may list them.
func (s *Service) ListByVacancy(ctx context.Context, ownerID int64, vacancyID string) ([]Response, error) {
	vacancy, err := s.Vacancies.GetByID(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	if vacancy.OwnerID != ownerID {
		return nil, vacancies.ErrNotFound
	}
	return s.Repo.ListByVacancy(ctx, vacancyID)
}

// ListByResume returns responses involving a resume, newest first. Only the
// resume owner may list them.
func (s *Service) ListByResume(ctx context.Context, ownerID int64, resumeID string) ([]Response, error) {
	resume, err := s.Resumes.GetByID(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	if resume.OwnerID != ownerID {
		return nil, resumes.ErrNotFound
	}
	return s.Repo.ListByResume(ctx, resumeID)
}

// Transition moves a response to a new status, enforcing the one-way machine.
func (s *Service) Transition(ctx context.Context, id string, to Status) (Response, error) {
	response, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Response{}, err
	}
	if !canTransition(response.Status, to) {
		return Response{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, response.Status, to)
	}
	if err := s.Repo.SetStatus(ctx, id, to); err != nil {
		return Response{}, err
	}
	response.Status = to

	telemetry.Info("response.transition", map[string]any{
		"response_id": id,
		"to":          string(to),
	})
	return response, nil
}

// MarkViewed is the employer opening an application for the first time.
// Already-progressed responses are left as-is.
func (s *Service) MarkViewed(ctx context.Context, id string) (Response, error) {
	response, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Response{}, err
	}
	if response.Status != StatusPending {
		return response, nil
	}
	return s.Transition(ctx, id, StatusViewed)
}
