package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"horeca-jobs-backend/internal/forms"
	"horeca-jobs-backend/internal/matching"
	"horeca-jobs-backend/internal/present"
	"horeca-jobs-backend/internal/responses"
	"horeca-jobs-backend/internal/resumes"
	"horeca-jobs-backend/internal/shared/telemetry"
	"horeca-jobs-backend/internal/users"
	"horeca-jobs-backend/internal/vacancies"
)

const listPageSize = 5

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	switch msg.Command() {
	case "start":
		if _, err := b.deps.Users.EnsureUser(ctx, userID, msg.From.UserName, ""); err != nil {
			b.sendError(chatID, err)
			return
		}
		b.send(chatID, "Добро пожаловать! Кто вы?", roleKeyboard())
	case "resume":
		b.startForm(ctx, chatID, userID, forms.EntityResume)
	case "vacancy":
		b.startForm(ctx, chatID, userID, forms.EntityVacancy)
	case "back":
		b.formBack(ctx, chatID, userID)
	case "cancel":
		b.formCancel(ctx, chatID, userID)
	case "my":
		b.showOwn(ctx, chatID, userID)
	case "search":
		b.browse(ctx, chatID, userID, 0)
	case "recommend":
		b.recommend(ctx, chatID, userID)
	default:
		b.send(chatID, "Команды: /resume, /vacancy, /my, /search, /recommend, /back, /cancel", nil)
	}
}

// handleText routes free text into the owner's in-progress form, if any.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	userID := msg.From.ID

	entityType, ok := b.activeDraft(ctx, userID)
	if !ok {
		b.send(chatID, "Нет активной анкеты. Начните с /resume или /vacancy.", nil)
		return
	}

	step, done, err := b.deps.Forms.Submit(ctx, userID, entityType, msg.Text)
	if err != nil {
		var validation *forms.ValidationError
		if errors.As(err, &validation) {
			b.send(chatID, validation.Message+"\n\n"+step.Prompt, nil)
			return
		}
		b.sendError(chatID, err)
		return
	}
	if done {
		b.send(chatID, step.Prompt, confirmKeyboard())
		return
	}
	b.send(chatID, step.Prompt, nil)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	userID := cb.From.ID

	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		telemetry.Warn("bot.callback_ack_failed", map[string]any{"error": err.Error()})
	}

	action, arg, _ := strings.Cut(cb.Data, ":")
	switch action {
	case "role":
		role := users.Role(arg)
		if _, err := b.deps.Users.SetRole(ctx, userID, role); err != nil {
			b.sendError(chatID, err)
			return
		}
		if role == users.RoleEmployer {
			b.send(chatID, "Вы работодатель. Создайте вакансию: /vacancy", nil)
		} else {
			b.send(chatID, "Вы соискатель. Создайте резюме: /resume", nil)
		}
	case "form":
		switch arg {
		case "back":
			b.formBack(ctx, chatID, userID)
		case "cancel":
			b.formCancel(ctx, chatID, userID)
		case "confirm":
			b.formConfirm(ctx, chatID, userID)
		}
	case "page":
		offset, err := strconv.Atoi(arg)
		if err != nil {
			return
		}
		b.browse(ctx, chatID, userID, offset)
	case "view":
		b.showDetail(ctx, chatID, userID, arg)
	case "apply":
		b.apply(ctx, chatID, userID, arg)
	}
}

func (b *Bot) startForm(ctx context.Context, chatID, userID int64, entityType forms.EntityType) {
	role := users.RoleApplicant
	if entityType == forms.EntityVacancy {
		role = users.RoleEmployer
	}
	if _, err := b.deps.Users.EnsureUser(ctx, userID, "", role); err != nil {
		b.sendError(chatID, err)
		return
	}
	step, err := b.deps.Forms.Start(ctx, userID, entityType)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	b.send(chatID, step.Prompt, formKeyboard())
}

func (b *Bot) formBack(ctx context.Context, chatID, userID int64) {
	entityType, ok := b.activeDraft(ctx, userID)
	if !ok {
		b.send(chatID, "Нет активной анкеты.", nil)
		return
	}
	step, draft, err := b.deps.Forms.Back(ctx, userID, entityType)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	prompt := step.Prompt
	if prior := draft.Field(step.Key); prior != "" {
		prompt += fmt.Sprintf("\n\nТекущее значение: %s", prior)
	}
	b.send(chatID, prompt, nil)
}

func (b *Bot) formCancel(ctx context.Context, chatID, userID int64) {
	entityType, ok := b.activeDraft(ctx, userID)
	if !ok {
		b.send(chatID, "Нет активной анкеты.", nil)
		return
	}
	deleted, err := b.deps.Forms.Cancel(ctx, userID, entityType)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	if deleted {
		b.send(chatID, "Анкета отменена, аккаунт удалён. Возвращайтесь: /start", nil)
		return
	}
	b.send(chatID, "Анкета отменена.", nil)
}

func (b *Bot) formConfirm(ctx context.Context, chatID, userID int64) {
	entityType, ok := b.activeDraft(ctx, userID)
	if !ok {
		b.send(chatID, "Нет активной анкеты.", nil)
		return
	}
	id, err := b.deps.Forms.Confirm(ctx, userID, entityType)
	if err != nil {
		if errors.Is(err, forms.ErrNotAtConfirmStep) {
			b.send(chatID, "Анкета ещё не заполнена до конца.", nil)
			return
		}
		b.sendError(chatID, err)
		return
	}
	if entityType == forms.EntityVacancy {
		b.send(chatID, "Вакансия опубликована! Подбор кандидатов: /recommend", nil)
	} else {
		b.send(chatID, "Резюме опубликовано! Подходящие вакансии: /recommend", nil)
	}
	telemetry.Info("bot.entity_published", map[string]any{
		"entityType": string(entityType),
		"entityId":   id,
	})
}

// activeDraft finds the entity type of the owner's in-progress form. When
// both drafts exist the most recently touched one wins.
func (b *Bot) activeDraft(ctx context.Context, userID int64) (forms.EntityType, bool) {
	_, resumeDraft, resumeErr := b.deps.Forms.Resume(ctx, userID, forms.EntityResume)
	_, vacancyDraft, vacancyErr := b.deps.Forms.Resume(ctx, userID, forms.EntityVacancy)

	switch {
	case resumeErr == nil && vacancyErr == nil:
		if vacancyDraft.UpdatedAt.After(resumeDraft.UpdatedAt) {
			return forms.EntityVacancy, true
		}
		return forms.EntityResume, true
	case resumeErr == nil:
		return forms.EntityResume, true
	case vacancyErr == nil:
		return forms.EntityVacancy, true
	default:
		return "", false
	}
}

// browse shows published vacancies to applicants and published resumes to
// employers, one page at a time.
func (b *Bot) browse(ctx context.Context, chatID, userID int64, offset int) {
	user, err := b.deps.Users.GetByID(ctx, userID)
	if err != nil {
		b.send(chatID, "Сначала зарегистрируйтесь: /start", nil)
		return
	}

	var cards []string
	var ids []string
	if user.Role == users.RoleEmployer {
		items, err := b.deps.Resumes.ListPublished(ctx)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		for _, r := range items {
			cards = append(cards, present.ResumeCard(r))
			ids = append(ids, r.ID)
		}
	} else {
		items, err := b.deps.Vacancies.ListActive(ctx)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		for _, v := range items {
			cards = append(cards, present.VacancyCard(v))
			ids = append(ids, v.ID)
		}
	}

	page := present.List(cards, present.Cursor{Offset: offset, PerPage: listPageSize})
	var markup interface{}
	if kb := listKeyboard(page.Nav, offset, ids); kb != nil {
		markup = *kb
	}
	b.send(chatID, page.Text, markup)
}

func (b *Bot) showOwn(ctx context.Context, chatID, userID int64) {
	user, err := b.deps.Users.GetByID(ctx, userID)
	if err != nil {
		b.send(chatID, "Сначала зарегистрируйтесь: /start", nil)
		return
	}

	var cards []string
	if user.Role == users.RoleEmployer {
		items, err := b.deps.Vacancies.ListByOwner(ctx, userID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		for _, v := range items {
			cards = append(cards, present.VacancyCard(v))
		}
	} else {
		items, err := b.deps.Resumes.ListByOwner(ctx, userID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		for _, r := range items {
			cards = append(cards, present.ResumeCard(r))
		}
	}
	b.send(chatID, present.List(cards, present.Cursor{PerPage: listPageSize}).Text, nil)
}

// showDetail renders one entity and counts the view when the reader is
// not its owner.
func (b *Bot) showDetail(ctx context.Context, chatID, userID int64, id string) {
	if vacancy, err := b.deps.Vacancies.View(ctx, id, userID); err == nil {
		b.send(chatID, present.VacancyDetail(vacancy).Text, applyKeyboard(vacancy.ID))
		return
	}
	resume, err := b.deps.Resumes.View(ctx, id, userID)
	if err != nil {
		b.send(chatID, "Не найдено.", nil)
		return
	}
	b.send(chatID, present.ResumeDetail(resume).Text, nil)
}

// apply sends a response from the applicant's first published resume.
func (b *Bot) apply(ctx context.Context, chatID, userID int64, vacancyID string) {
	owned, err := b.deps.Resumes.ListByOwner(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	var resumeID string
	for _, r := range owned {
		if r.Status == resumes.StatusPublished {
			resumeID = r.ID
			break
		}
	}
	if resumeID == "" {
		b.send(chatID, "Сначала опубликуйте резюме: /resume", nil)
		return
	}

	if _, err := b.deps.Responses.Apply(ctx, userID, resumeID, vacancyID, ""); err != nil {
		switch {
		case errors.Is(err, responses.ErrDuplicate):
			b.send(chatID, "Вы уже откликались на эту вакансию.", nil)
		case errors.Is(err, responses.ErrVacancyNotActive):
			b.send(chatID, "Вакансия больше не принимает отклики.", nil)
		default:
			b.sendError(chatID, err)
		}
		return
	}
	b.send(chatID, "Отклик отправлен!", nil)
}

// recommend shows matches for the owner's most recent published entity.
func (b *Bot) recommend(ctx context.Context, chatID, userID int64) {
	user, err := b.deps.Users.GetByID(ctx, userID)
	if err != nil {
		b.send(chatID, "Сначала зарегистрируйтесь: /start", nil)
		return
	}

	if user.Role == users.RoleEmployer {
		owned, err := b.deps.Vacancies.ListByOwner(ctx, userID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		for _, v := range owned {
			if v.Status != vacancies.StatusActive {
				continue
			}
			recs, err := b.deps.Recommendations.ForVacancy(ctx, v.ID)
			if err != nil {
				b.sendError(chatID, err)
				return
			}
			b.sendRecommendations(ctx, chatID, recs, true)
			return
		}
		b.send(chatID, "Нет активных вакансий. Создайте: /vacancy", nil)
		return
	}

	owned, err := b.deps.Resumes.ListByOwner(ctx, userID)
	if err != nil {
		b.sendError(chatID, err)
		return
	}
	for _, r := range owned {
		if r.Status != resumes.StatusPublished {
			continue
		}
		recs, err := b.deps.Recommendations.ForResume(ctx, r.ID)
		if err != nil {
			b.sendError(chatID, err)
			return
		}
		b.sendRecommendations(ctx, chatID, recs, false)
		return
	}
	b.send(chatID, "Нет опубликованного резюме. Создайте: /resume", nil)
}

func (b *Bot) sendRecommendations(ctx context.Context, chatID int64, recs []matching.Recommendation, forEmployer bool) {
	if len(recs) == 0 {
		b.send(chatID, "Пока нет подходящих вариантов. Загляните позже.", nil)
		return
	}

	var cards []string
	for _, rec := range recs {
		var card string
		if forEmployer {
			resume, err := b.deps.Resumes.GetByID(ctx, rec.ID)
			if err != nil {
				continue
			}
			card = present.ResumeCard(resume)
		} else {
			vacancy, err := b.deps.Vacancies.GetByID(ctx, rec.ID)
			if err != nil {
				continue
			}
			card = present.VacancyCard(vacancy)
		}
		cards = append(cards, fmt.Sprintf("%s\nСовпадение: %.0f%%", card, rec.Score))
	}
	b.send(chatID, present.List(cards, present.Cursor{PerPage: listPageSize}).Text, nil)
}

func (b *Bot) sendError(chatID int64, err error) {
	telemetry.Error("bot.handler_failed", map[string]any{
		"chatId": chatID,
		"error":  err.Error(),
	})
	b.send(chatID, "Что-то пошло не так, попробуйте позже.", nil)
}
