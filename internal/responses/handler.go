package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/server/middleware"
	"horeca-jobs-backend/internal/shared/server/respond"
	"horeca-jobs-backend/internal/vacancies"
)

// Handler exposes response endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches response routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/responses", h.create)
	rg.GET("/vacancies/:id/responses", h.listByVacancy)
	rg.GET("/resumes/:id/responses", h.listByResume)
	rg.POST("/responses/:id/view", h.markViewed)
	rg.POST("/responses/:id/invite", h.transition(StatusInvited))
	rg.POST("/responses/:id/accept", h.transition(StatusAccepted))
	rg.POST("/responses/:id/reject", h.transition(StatusRejected))
}

type createRequest struct {
	ResumeID     string `json:"resumeId" binding:"required"`
	VacancyID    string `json:"vacancyId" binding:"required"`
	Message      string `json:"message"`
	IsInvitation bool   `json:"isInvitation"`
}

func (h *Handler) create(c *gin.Context) {
	var payload createRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid response payload", nil)
		return
	}

	actorID := middleware.TelegramIDFromContext(c)
	var (
		response Response
		err      error
	)
	if payload.IsInvitation {
		response, err = h.Svc.Invite(c.Request.Context(), actorID, payload.ResumeID, payload.VacancyID, payload.Message)
	} else {
		response, err = h.Svc.Apply(c.Request.Context(), actorID, payload.ResumeID, payload.VacancyID, payload.Message)
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Created(c, response)
}

func (h *Handler) listByVacancy(c *gin.Context) {
	items, err := h.Svc.ListByVacancy(c.Request.Context(), middleware.TelegramIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) listByResume(c *gin.Context) {
	items, err := h.Svc.ListByResume(c.Request.Context(), middleware.TelegramIDFromContext(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) markViewed(c *gin.Context) {
	response, err := h.Svc.MarkViewed(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, response)
}

func (h *Handler) transition(to Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		response, err := h.Svc.Transition(c.Request.Context(), c.Param("id"), to)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Set("statusTransition", string(to))
		respond.OK(c, response)
	}
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, resumes.ErrNotFound), errors.Is(err, vacancies.ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrDuplicate):
		respond.Error(c, http.StatusConflict, "duplicate", "response already exists", nil)
	case errors.Is(err, ErrVacancyNotActive):
		respond.Error(c, http.StatusUnprocessableEntity, "vacancy_not_active", "vacancy is not accepting responses", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process response", nil)
	}
}
