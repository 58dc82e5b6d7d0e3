// Package bot runs the Telegram side of the marketplace: long-poll loop,
// per-chat serialized dispatch, and routing into the form engine and the
// browse/recommendation views.
package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"horeca-jobs-backend/internal/forms"
	"horeca-jobs-backend/internal/recommendations"
	"horeca-jobs-backend/internal/responses"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/telemetry"
	"horeca-jobs-backend/internal/users"
	"horeca-jobs-backend/internal/vacancies"
)

// Deps carries everything the bot needs to serve updates.
type Deps struct {
	Users           *users.Service
	Forms           *forms.Engine
	Resumes         *resumes.Service
	Vacancies       *vacancies.Service
	Recommendations *recommendations.Service
	Responses       *responses.Service
}

// Bot is the long-polling Telegram frontend.
type Bot struct {
	api  *tgbotapi.BotAPI
	disp *dispatcher
	deps Deps
}

func New(token string, deps Deps) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, disp: newDispatcher(), deps: deps}, nil
}

// Run polls for updates until ctx is cancelled. Updates from the same
// chat are handled strictly one at a time.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	telemetry.Info("bot.started", map[string]any{"username": b.api.Self.UserName})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.disp.wait()
			telemetry.Info("bot.stopped", nil)
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				b.disp.wait()
				return nil
			}
			chatID := updateChatID(update)
			if chatID == 0 {
				continue
			}
			b.disp.dispatch(chatID, func() {
				handleCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				b.handleUpdate(handleCtx, update)
			})
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			telemetry.Error("bot.handler_panic", map[string]any{"panic": r})
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		telemetry.Error("bot.send_failed", map[string]any{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}
}

func updateChatID(update tgbotapi.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return update.CallbackQuery.Message.Chat.ID
	default:
		return 0
	}
}
