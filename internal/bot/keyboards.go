package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"horeca-jobs-backend/internal/present"
)

func roleKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙋 Ищу работу", "role:applicant"),
			tgbotapi.NewInlineKeyboardButtonData("🏢 Ищу сотрудников", "role:employer"),
		),
	)
}

func formKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "form:back"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "form:cancel"),
		),
	)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Опубликовать", "form:confirm"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "form:back"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "form:cancel"),
		),
	)
}

func applyKeyboard(vacancyID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📨 Откликнуться", "apply:"+vacancyID),
		),
	)
}

// listKeyboard builds numbered view buttons for the visible page plus the
// prev/next nav row.
func listKeyboard(nav *present.Nav, offset int, ids []string) *tgbotapi.InlineKeyboardMarkup {
	if nav == nil {
		return nil
	}

	var rows [][]tgbotapi.InlineKeyboardButton

	end := offset + listPageSize
	if end > len(ids) {
		end = len(ids)
	}
	if offset < end {
		var viewRow []tgbotapi.InlineKeyboardButton
		for i, id := range ids[offset:end] {
			viewRow = append(viewRow, tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d", i+1), "view:"+id))
		}
		rows = append(rows, viewRow)
	}

	var navRow []tgbotapi.InlineKeyboardButton
	if nav.HasPrev {
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData(
			"◀️", fmt.Sprintf("page:%d", offset-listPageSize)))
	}
	if nav.HasNext {
		navRow = append(navRow, tgbotapi.NewInlineKeyboardButtonData(
			"▶️", fmt.Sprintf("page:%d", offset+listPageSize)))
	}
	if len(navRow) > 0 {
		rows = append(rows, navRow)
	}

	if len(rows) == 0 {
		return nil
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
