// Package bootstrap wires storage, services and handlers into a runnable
// application. cmd/api and cmd/bot both build on it.
package bootstrap

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"

	"horeca-jobs-backend/internal/complaints"
	"horeca-jobs-backend/internal/events"
	"horeca-jobs-backend/internal/forms"
	"horeca-jobs-backend/internal/matching"
	"horeca-jobs-backend/internal/recommendations"
	"horeca-jobs-backend/internal/responses"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/config"
	"horeca-jobs-backend/internal/shared/storage/db"
	"horeca-jobs-backend/internal/shared/storage/redis"
	"horeca-jobs-backend/internal/shared/telemetry"
	"horeca-jobs-backend/internal/users"
	"horeca-jobs-backend/internal/vacancies"
)

// App holds every constructed component. Close releases the shared
// connections.
type App struct {
	Cfg config.Config

	DB    *sql.DB
	Redis *goredis.Client

	Users           *users.Service
	Resumes         *resumes.Service
	Vacancies       *vacancies.Service
	Responses       *responses.Service
	Complaints      *complaints.Service
	Recommendations *recommendations.Service
	Forms           *forms.Engine
}

// New builds the application. Without DATABASE_URL or REDIS_URL the
// corresponding layer falls back to its in-memory implementation, which
// keeps local runs dependency-free.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Cfg: cfg}

	var (
		userRepo      users.Repo
		resumeRepo    resumes.Repo
		vacancyRepo   vacancies.Repo
		responseRepo  responses.Repo
		complaintRepo complaints.Repo
	)
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			return nil, err
		}
		app.DB = database
		userRepo = &users.PGRepo{DB: database}
		resumeRepo = &resumes.PGRepo{DB: database}
		vacancyRepo = &vacancies.PGRepo{DB: database}
		responseRepo = &responses.PGRepo{DB: database}
		complaintRepo = &complaints.PGRepo{DB: database}
	} else {
		telemetry.Warn("bootstrap.memory_storage", map[string]any{
			"reason": "DATABASE_URL is not set",
		})
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		vacancyRepo = vacancies.NewMemoryRepo()
		responseRepo = responses.NewMemoryRepo()
		complaintRepo = complaints.NewMemoryRepo()
	}

	var draftStore forms.DraftStore
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		app.Redis = client
		draftStore = forms.NewRedisStore(client, cfg.DraftTTL)
	} else {
		telemetry.Warn("bootstrap.memory_drafts", map[string]any{
			"reason": "REDIS_URL is not set",
		})
		draftStore = forms.NewMemoryStore()
	}

	var publisher events.Publisher
	if cfg.EventsQueueURL != "" {
		sqsPublisher, err := events.NewSQSPublisher(ctx, cfg.EventsQueueURL)
		if err != nil {
			return nil, err
		}
		publisher = sqsPublisher
	}

	app.Users = users.NewService(userRepo)
	app.Resumes = resumes.NewService(resumeRepo, publisher)
	app.Vacancies = vacancies.NewService(vacancyRepo, publisher)
	app.Responses = responses.NewService(responseRepo, resumeRepo, vacancyRepo)
	app.Complaints = complaints.NewService(complaintRepo)

	app.Recommendations = recommendations.NewService(
		matching.NewEngine(nil),
		recommendations.NewRepoPool(resumeRepo, vacancyRepo),
	)
	app.Recommendations.MinScore = cfg.MinMatchScore
	app.Recommendations.Limit = cfg.MatchLimit

	app.Forms = forms.NewEngine(draftStore, app.Users)
	app.Forms.Publishers[forms.EntityResume] = forms.ResumePublisher(app.Resumes)
	app.Forms.Publishers[forms.EntityVacancy] = forms.VacancyPublisher(app.Vacancies)

	return app, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() {
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			telemetry.Warn("bootstrap.db_close", map[string]any{"error": err.Error()})
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			telemetry.Warn("bootstrap.redis_close", map[string]any{"error": err.Error()})
		}
	}
}
