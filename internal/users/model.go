package users

import "time"

// Role distinguishes the two sides of the marketplace.
type Role string

const (
	RoleApplicant Role = "applicant"
	RoleEmployer  Role = "employer"
)

// User is a Telegram-identified account.
type User struct {
	TelegramID       int64     `json:"telegramId"`
	Username         string    `json:"username,omitempty"`
	Role             Role      `json:"role"`
	FirstResumeDone  bool      `json:"firstResumeDone"`
	FirstVacancyDone bool      `json:"firstVacancyDone"`
	CreatedAt        time.Time `json:"createdAt"`
}
