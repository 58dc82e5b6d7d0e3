package complaints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/shared/server/middleware"
	"horeca-jobs-backend/internal/shared/server/respond"
)

// Handler exposes complaint endpoints.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/complaints", h.create)
	rg.GET("/complaints", h.listByTarget)
}

type createRequest struct {
	TargetType string `json:"targetType" binding:"required"`
	TargetID   string `json:"targetId" binding:"required"`
	Reason     string `json:"reason" binding:"required"`
}

func (h *Handler) create(c *gin.Context) {
	var payload createRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respond.Error(c, http.StatusBadRequest, "bad_request", "invalid complaint payload", nil)
		return
	}

	reporterID := middleware.TelegramIDFromContext(c)
	complaint, err := h.Svc.File(c.Request.Context(), reporterID,
		TargetType(payload.TargetType), payload.TargetID, payload.Reason)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.Created(c, complaint)
}

func (h *Handler) listByTarget(c *gin.Context) {
	items, err := h.Svc.ListByTarget(c.Request.Context(),
		TargetType(c.Query("targetType")), c.Query("targetId"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"items": items})
}

func (h *Handler) fail(c *gin.Context, err error) {
	var limited *RateLimitError
	switch {
	case errors.As(err, &limited):
		c.Header("Retry-After", strconv.Itoa(int(limited.RetryAfter.Seconds())))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "too many complaints, try again later", gin.H{
			"retryAfterSeconds": int(limited.RetryAfter.Seconds()),
		})
	case errors.Is(err, ErrInvalidTarget):
		respond.Error(c, http.StatusBadRequest, "invalid_target", "complaint target is invalid", nil)
	case errors.Is(err, ErrEmptyReason):
		respond.Error(c, http.StatusUnprocessableEntity, "empty_reason", "complaint reason is required", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process complaint", nil)
	}
}
