package recommendations

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/server/respond"
	"horeca-jobs-backend/internal/vacancies"
)

// Handler exposes recommendation endpoints for both anchor types.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes/:id/recommendations", h.forResume)
	rg.GET("/vacancies/:id/recommendations", h.forVacancy)
}

func (h *Handler) forResume(c *gin.Context) {
	recs, err := h.Svc.ForResume(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "resume not found")
		return
	}
	respond.OK(c, gin.H{"items": recs})
}

func (h *Handler) forVacancy(c *gin.Context) {
	recs, err := h.Svc.ForVacancy(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "vacancy not found")
		return
	}
	respond.OK(c, gin.H{"items": recs})
}

func (h *Handler) fail(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, resumes.ErrNotFound), errors.Is(err, vacancies.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", notFoundMsg, nil)
	case errors.Is(err, ErrPoolUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "unavailable", "try again later", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build recommendations", nil)
	}
}
