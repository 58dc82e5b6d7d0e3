package recommendations

import (
	"context"

	"horeca-jobs-backend/internal/matching"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

// RepoPool serves the candidate pool straight from the feature repos.
type RepoPool struct {
	Resumes   resumes.Repo
	Vacancies vacancies.Repo
}

func NewRepoPool(resumeRepo resumes.Repo, vacancyRepo vacancies.Repo) *RepoPool {
	return &RepoPool{Resumes: resumeRepo, Vacancies: vacancyRepo}
}

func (p *RepoPool) ResumeProfile(ctx context.Context, id string) (matching.ResumeProfile, error) {
	resume, err := p.Resumes.GetByID(ctx, id)
	if err != nil {
		return matching.ResumeProfile{}, err
	}
	return resume.Profile(), nil
}

func (p *RepoPool) VacancyProfile(ctx context.Context, id string) (matching.VacancyProfile, error) {
	vacancy, err := p.Vacancies.GetByID(ctx, id)
	if err != nil {
		return matching.VacancyProfile{}, err
	}
	return vacancy.Profile(), nil
}

func (p *RepoPool) PublishedResumes(ctx context.Context) ([]matching.ResumeProfile, error) {
	items, err := p.Resumes.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]matching.ResumeProfile, len(items))
	for i, item := range items {
		profiles[i] = item.Profile()
	}
	return profiles, nil
}

func (p *RepoPool) PublishedVacancies(ctx context.Context) ([]matching.VacancyProfile, error) {
	items, err := p.Vacancies.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]matching.VacancyProfile, len(items))
	for i, item := range items {
		profiles[i] = item.Profile()
	}
	return profiles, nil
}
