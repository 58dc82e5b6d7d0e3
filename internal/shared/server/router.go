package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"horeca-jobs-backend/internal/complaints"
	"horeca-jobs-backend/internal/recommendations"
	"horeca-jobs-backend/internal/responses"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/auth"
	"horeca-jobs-backend/internal/shared/config"
	"horeca-jobs-backend/internal/shared/server/middleware"
	"horeca-jobs-backend/internal/vacancies"
)

// Handlers groups the feature handlers the router mounts under /api/v1.
type Handlers struct {
	Resumes         *resumes.Handler
	Vacancies       *vacancies.Handler
	Responses       *responses.Handler
	Complaints      *complaints.Handler
	Recommendations *recommendations.Handler
}

// NewRouter assembles the gin engine with the full middleware chain.
func NewRouter(cfg config.Config, verifier *auth.Verifier, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth(verifier))

	if h.Resumes != nil {
		h.Resumes.RegisterRoutes(api)
	}
	if h.Vacancies != nil {
		h.Vacancies.RegisterRoutes(api)
	}
	if h.Responses != nil {
		h.Responses.RegisterRoutes(api)
	}
	if h.Recommendations != nil {
		h.Recommendations.RegisterRoutes(api)
	}
	if h.Complaints != nil {
		// Complaint routes carry a token bucket in addition to the
		// service-level cooldown.
		limited := api.Group("")
		limited.Use(middleware.RateLimit(middleware.NewRateLimiter(nil), middleware.RateLimitRule{
			Rate:  1,
			Burst: 3,
		}))
		h.Complaints.RegisterRoutes(limited)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
