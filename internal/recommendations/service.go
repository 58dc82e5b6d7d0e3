package recommendations

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"horeca-jobs-backend/internal/matching"
)

// ErrPoolUnavailable indicates a transient candidate-pool fetch failure.
// Callers should surface "try again later"; the service never retries.
var ErrPoolUnavailable = errors.New("candidate pool unavailable")

const (
	// DefaultMinScore is the threshold below which candidates are dropped.
	DefaultMinScore = 40.0
	// DefaultLimit caps the recommendation list length.
	DefaultLimit = 10
)

// Pool supplies anchors and candidate sets from storage.
type Pool interface {
	ResumeProfile(ctx context.Context, id string) (matching.ResumeProfile, error)
	VacancyProfile(ctx context.Context, id string) (matching.VacancyProfile, error)
	PublishedResumes(ctx context.Context) ([]matching.ResumeProfile, error)
	PublishedVacancies(ctx context.Context) ([]matching.VacancyProfile, error)
}

// Service ranks candidates against an anchor entity.
type Service struct {
	Engine   *matching.Engine
	Pool     Pool
	MinScore float64
	Limit    int
}

// NewService constructs a Service with default threshold and limit.
func NewService(engine *matching.Engine, pool Pool) *Service {
	return &Service{
		Engine:   engine,
		Pool:     pool,
		MinScore: DefaultMinScore,
		Limit:    DefaultLimit,
	}
}

// ForResume returns the top vacancies for a resume, descending by score.
// An empty slice means nothing cleared the threshold; it is not an error.
func (s *Service) ForResume(ctx context.Context, resumeID string) ([]matching.Recommendation, error) {
	anchor, err := s.Pool.ResumeProfile(ctx, resumeID)
	if err != nil {
		return nil, err
	}
	pool, err := s.Pool.PublishedVacancies(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}

	recs := make([]matching.Recommendation, 0, len(pool))
	for _, vacancy := range pool {
		rec := s.Engine.Score(anchor, vacancy)
		if rec.Score >= s.minScore() {
			recs = append(recs, rec)
		}
	}
	return s.rank(recs), nil
}

// ForVacancy returns the top resumes for a vacancy, descending by score.
func (s *Service) ForVacancy(ctx context.Context, vacancyID string) ([]matching.Recommendation, error) {
	anchor, err := s.Pool.VacancyProfile(ctx, vacancyID)
	if err != nil {
		return nil, err
	}
	pool, err := s.Pool.PublishedResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}

	recs := make([]matching.Recommendation, 0, len(pool))
	for _, resume := range pool {
		rec := s.Engine.Score(resume, anchor)
		rec.ID = resume.ID
		if rec.Score >= s.minScore() {
			recs = append(recs, rec)
		}
	}
	return s.rank(recs), nil
}

// rank sorts descending by score. The sort is stable so equal scores keep
// their candidate-pool order across repeated calls.
func (s *Service) rank(recs []matching.Recommendation) []matching.Recommendation {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})
	if limit := s.limit(); len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func (s *Service) minScore() float64 {
	if s.MinScore <= 0 {
		return DefaultMinScore
	}
	return s.MinScore
}

func (s *Service) limit() int {
	if s.Limit <= 0 {
		return DefaultLimit
	}
	return s.Limit
}
