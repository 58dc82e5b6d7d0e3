package vacancies

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/shared/server/middleware"
	"horeca-jobs-backend/internal/shared/server/respond"
)

// Handler exposes vacancy endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches vacancy routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vacancies", h.create)
	rg.GET("/vacancies", h.listActive)
	rg.GET("/vacancies/:id", h.get)
	rg.PUT("/vacancies/:id", h.update)
	rg.POST("/vacancies/:id/publish", h.transition(h.Svc.Publish, "publish"))
	rg.POST("/vacancies/:id/pause", h.transition(h.Svc.Pause, "pause"))
	rg.POST("/vacancies/:id/resume", h.transition(h.Svc.Resume, "resume"))
	rg.POST("/vacancies/:id/archive", h.transition(h.Svc.Archive, "archive"))
	rg.POST("/vacancies/:id/restore", h.transition(h.Svc.Restore, "restore"))
	rg.POST("/vacancies/:id/close", h.transition(h.Svc.Close, "close"))
	rg.GET("/me/vacancies", h.listMine)
}

func (h *Handler) create(c *gin.Context) {
	var payload Vacancy
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid vacancy payload", nil)
		return
	}
	payload.OwnerID = middleware.TelegramIDFromContext(c)

	vacancy, err := h.Svc.CreateDraft(c.Request.Context(), payload)
	if err != nil {
		h.fail(c, err, "failed to create vacancy")
		return
	}
	c.Set("vacancyId", vacancy.ID)
	respond.Created(c, vacancy)
}

func (h *Handler) get(c *gin.Context) {
	vacancy, err := h.Svc.View(c.Request.Context(), c.Param("id"), middleware.TelegramIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to load vacancy")
		return
	}
	respond.OK(c, vacancy)
}

func (h *Handler) update(c *gin.Context) {
	var payload Vacancy
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid vacancy payload", nil)
		return
	}
	payload.ID = c.Param("id")

	vacancy, err := h.Svc.Update(c.Request.Context(), middleware.TelegramIDFromContext(c), payload)
	if err != nil {
		h.fail(c, err, "failed to update vacancy")
		return
	}
	respond.OK(c, vacancy)
}

func (h *Handler) listActive(c *gin.Context) {
	items, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vacancies", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) listMine(c *gin.Context) {
	items, err := h.Svc.ListByOwner(c.Request.Context(), middleware.TelegramIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vacancies", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) transition(op func(ctx context.Context, ownerID int64, id string) (Vacancy, error), name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		vacancy, err := op(c.Request.Context(), middleware.TelegramIDFromContext(c), c.Param("id"))
		if err != nil {
			h.fail(c, err, "failed to "+name+" vacancy")
			return
		}
		c.Set("statusTransition", name)
		respond.OK(c, vacancy)
	}
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "vacancy not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrIncomplete):
		respond.Error(c, http.StatusUnprocessableEntity, "incomplete", "fill in required fields before publishing", nil)
	case errors.Is(err, ErrInvalidSalaryBand):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_salary", "salary_min must not exceed salary_max", nil)
	case errors.Is(err, ErrInvalidDuration):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_duration", "publication duration must be one of 7, 14, 30, 60, 90 days", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
