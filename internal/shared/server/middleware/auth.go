package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/shared/auth"
	"horeca-jobs-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userRoleKey = "userRole"
)

// Auth validates bearer tokens or the X-Telegram-Id header set by the bot
// gateway, and stores identity in context.
func Auth(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))

		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
			if token == "" {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}

			c.Set(userIDKey, strconv.FormatInt(claims.TelegramID, 10))
			if claims.Role != "" {
				c.Set(userRoleKey, claims.Role)
			}
			c.Next()
			return
		}

		// The bot process talks to the API over the internal network and
		// forwards the already-verified Telegram identity.
		telegramID := strings.TrimSpace(c.GetHeader("X-Telegram-Id"))
		if telegramID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing identity", nil)
			return
		}
		if _, err := strconv.ParseInt(telegramID, 10, 64); err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "invalid identity", nil)
			return
		}

		c.Set(userIDKey, telegramID)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user ID, if any.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// TelegramIDFromContext parses the authenticated user ID as a Telegram ID.
func TelegramIDFromContext(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.GetString(userIDKey), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
