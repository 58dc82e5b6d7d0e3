package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

// ResumePublisher turns a completed resume draft into a published resume.
func ResumePublisher(svc *resumes.Service) Publisher {
	return func(ctx context.Context, draft Draft) (string, error) {
		resume := resumes.Resume{
			OwnerID:         draft.OwnerID,
			Position:        draft.Field(stepPosition),
			SalaryType:      resumes.SalaryType(draft.Field(stepSalaryType)),
			City:            draft.Field(stepCity),
			ReadyToRelocate: draft.Field(stepRelocation) == "yes",
			Skills:          splitList(draft.Field(stepSkills)),
			Education:       splitList(draft.Field(stepEducation)),
			Languages:       splitList(draft.Field(stepLanguages)),
		}
		if raw := draft.Field(stepSalary); raw != "" {
			salary, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return "", fmt.Errorf("draft salary %q: %w", raw, err)
			}
			resume.DesiredSalary = &salary
		}
		if raw := draft.Field(stepExperience); raw != "" {
			resume.Experience = []resumes.WorkExperience{{Position: raw}}
		}

		created, err := svc.CreateDraft(ctx, resume)
		if err != nil {
			return "", err
		}
		published, err := svc.Publish(ctx, draft.OwnerID, created.ID)
		if err != nil {
			return "", err
		}
		return published.ID, nil
	}
}

// VacancyPublisher turns a completed vacancy draft into an active vacancy.
func VacancyPublisher(svc *vacancies.Service) Publisher {
	return func(ctx context.Context, draft Draft) (string, error) {
		durationDays, err := strconv.Atoi(draft.Field(stepDuration))
		if err != nil {
			return "", fmt.Errorf("draft duration %q: %w", draft.Field(stepDuration), err)
		}
		salaryMin, salaryMax := ParseSalaryBand(draft.Field(stepSalary))

		vacancy := vacancies.Vacancy{
			OwnerID:                 draft.OwnerID,
			Position:                draft.Field(stepPosition),
			PositionCategory:        draft.Field(stepPositionCategory),
			SalaryMin:               salaryMin,
			SalaryMax:               salaryMax,
			City:                    draft.Field(stepCity),
			RequiredExperience:      draft.Field(stepRequiredExp),
			RequiredEducation:       draft.Field(stepEducation),
			RequiredSkills:          splitList(draft.Field(stepSkills)),
			EmploymentType:          draft.Field(stepEmployment),
			WorkSchedule:            draft.Field(stepSchedule),
			Description:             draft.Field(stepDescription),
			Responsibilities:        draft.Field(stepResponsibilities),
			Cuisines:                splitList(draft.Field(stepCuisines)),
			IsAnonymous:             draft.Field(stepIsAnonymous) == "yes",
			PublicationDurationDays: durationDays,
		}

		created, err := svc.CreateDraft(ctx, vacancy)
		if err != nil {
			return "", err
		}
		published, err := svc.Publish(ctx, draft.OwnerID, created.ID)
		if err != nil {
			return "", err
		}
		return published.ID, nil
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
