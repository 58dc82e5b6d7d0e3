package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"horeca-jobs-backend/internal/bootstrap"
	"horeca-jobs-backend/internal/complaints"
	"horeca-jobs-backend/internal/recommendations"
	"horeca-jobs-backend/internal/responses"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/auth"
	"horeca-jobs-backend/internal/shared/config"
	"horeca-jobs-backend/internal/shared/server"
	"horeca-jobs-backend/internal/shared/telemetry"
	"horeca-jobs-backend/internal/vacancies"
)

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	go runExpirySweep(ctx, app.Vacancies, cfg.ExpirySweepEvery)

	handlers := server.Handlers{
		Resumes:         resumes.NewHandler(app.Resumes),
		Vacancies:       vacancies.NewHandler(app.Vacancies),
		Responses:       responses.NewHandler(app.Responses),
		Complaints:      complaints.NewHandler(app.Complaints),
		Recommendations: recommendations.NewHandler(app.Recommendations),
	}
	r := server.NewRouter(cfg, auth.NewVerifier(cfg.JWTSecret), handlers)

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// runExpirySweep archives vacancies whose publication window has passed.
func runExpirySweep(ctx context.Context, svc *vacancies.Service, every time.Duration) {
	if every <= 0 {
		every = 15 * time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			expired, err := svc.ExpireDue(ctx)
			if err != nil {
				telemetry.Error("expiry_sweep.failed", map[string]any{"error": err.Error()})
				continue
			}
			if expired > 0 {
				telemetry.Info("expiry_sweep.complete", map[string]any{"expired": expired})
			}
		}
	}
}
