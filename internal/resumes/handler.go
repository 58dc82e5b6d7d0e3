package resumes

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/shared/server/middleware"
	"horeca-jobs-backend/internal/shared/server/respond"
)

// Handler exposes resume endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.POST("/resumes/:id/publish", h.transition(h.Svc.Publish, "publish"))
	rg.POST("/resumes/:id/archive", h.transition(h.Svc.Archive, "archive"))
	rg.POST("/resumes/:id/restore", h.transition(h.Svc.Restore, "restore"))
	rg.GET("/me/resumes", h.listMine)
}

func (h *Handler) create(c *gin.Context) {
	var payload Resume
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid resume payload", nil)
		return
	}
	payload.OwnerID = middleware.TelegramIDFromContext(c)

	resume, err := h.Svc.CreateDraft(c.Request.Context(), payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create resume", nil)
		return
	}
	c.Set("resumeId", resume.ID)
	respond.Created(c, resume)
}

func (h *Handler) get(c *gin.Context) {
	resume, err := h.Svc.View(c.Request.Context(), c.Param("id"), middleware.TelegramIDFromContext(c))
	if err != nil {
		h.fail(c, err, "failed to load resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) update(c *gin.Context) {
	var payload Resume
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid resume payload", nil)
		return
	}
	payload.ID = c.Param("id")

	resume, err := h.Svc.Update(c.Request.Context(), middleware.TelegramIDFromContext(c), payload)
	if err != nil {
		h.fail(c, err, "failed to update resume")
		return
	}
	respond.OK(c, resume)
}

func (h *Handler) listMine(c *gin.Context) {
	items, err := h.Svc.ListByOwner(c.Request.Context(), middleware.TelegramIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) transition(op func(ctx context.Context, ownerID int64, id string) (Resume, error), name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resume, err := op(c.Request.Context(), middleware.TelegramIDFromContext(c), c.Param("id"))
		if err != nil {
			h.fail(c, err, "failed to "+name+" resume")
			return
		}
		c.Set("statusTransition", name)
		respond.OK(c, resume)
	}
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		respond.Error(c, http.StatusConflict, "invalid_transition", err.Error(), nil)
	case errors.Is(err, ErrIncomplete):
		respond.Error(c, http.StatusUnprocessableEntity, "incomplete", "fill in required fields before publishing", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", msg, nil)
	}
}
