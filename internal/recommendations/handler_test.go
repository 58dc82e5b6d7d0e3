package recommendations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/matching"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/vacancies"
)

func newHandlerFixture(t *testing.T) (*gin.Engine, *resumes.MemoryRepo, *vacancies.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeRepo := resumes.NewMemoryRepo()
	vacancyRepo := vacancies.NewMemoryRepo()
	svc := NewService(matching.NewEngine(nil), NewRepoPool(resumeRepo, vacancyRepo))

	router := gin.New()
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router, resumeRepo, vacancyRepo
}

func TestResumeRecommendationsEndpoint(t *testing.T) {
	router, resumeRepo, vacancyRepo := newHandlerFixture(t)
	ctx := context.Background()

	resume := resumes.Resume{
		ID:       "res-1",
		OwnerID:  1,
		Position: "Бариста",
		City:     "Москва",
		Skills:   []string{"espresso"},
		Status:   resumes.StatusPublished,
	}
	if err := resumeRepo.Create(ctx, resume); err != nil {
		t.Fatalf("seed resume: %v", err)
	}
	vacancy := vacancies.Vacancy{
		ID:             "vac-1",
		OwnerID:        2,
		Position:       "Бариста",
		City:           "Москва",
		RequiredSkills: []string{"espresso"},
		Status:         vacancies.StatusActive,
	}
	if err := vacancyRepo.Create(ctx, vacancy); err != nil {
		t.Fatalf("seed vacancy: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resumes/res-1/recommendations", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"vac-1"`) {
		t.Fatalf("expected matching vacancy in response, got %s", rec.Body.String())
	}
}

func TestVacancyRecommendationsEndpointMissingAnchor(t *testing.T) {
	router, _, _ := newHandlerFixture(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vacancies/missing/recommendations", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
