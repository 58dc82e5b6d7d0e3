package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"horeca-jobs-backend/internal/bootstrap"
	"horeca-jobs-backend/internal/bot"
	"horeca-jobs-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer app.Close()

	b, err := bot.New(cfg.BotToken, bot.Deps{
		Users:           app.Users,
		Forms:           app.Forms,
		Resumes:         app.Resumes,
		Vacancies:       app.Vacancies,
		Recommendations: app.Recommendations,
		Responses:       app.Responses,
	})
	if err != nil {
		log.Fatalf("bot init: %v", err)
	}

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot error: %v", err)
	}
}
