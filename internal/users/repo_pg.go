package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo stores users in PostgreSQL.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (telegram_id, username, role, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (telegram_id) DO UPDATE SET
  username = EXCLUDED.username,
  role = EXCLUDED.role`
	_, err := r.DB.ExecContext(ctx, query,
		user.TelegramID,
		nullableString(user.Username),
		string(user.Role),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, telegramID int64) (User, error) {
	const query = `
SELECT telegram_id, username, role, first_resume_done, first_vacancy_done, created_at
FROM users
WHERE telegram_id = $1
LIMIT 1`
	var user User
	var username sql.NullString
	var role string
	err := r.DB.QueryRowContext(ctx, query, telegramID).Scan(
		&user.TelegramID,
		&username,
		&role,
		&user.FirstResumeDone,
		&user.FirstVacancyDone,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if username.Valid {
		user.Username = username.String
	}
	user.Role = Role(role)
	return user, nil
}

func (r *PGRepo) MarkFirstDone(ctx context.Context, telegramID int64, entityType string) error {
	column, err := firstDoneColumn(entityType)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE users SET %s = TRUE WHERE telegram_id = $1`, column)
	res, err := r.DB.ExecContext(ctx, query, telegramID)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) Delete(ctx context.Context, telegramID int64) error {
	const query = `DELETE FROM users WHERE telegram_id = $1`
	_, err := r.DB.ExecContext(ctx, query, telegramID)
	return err
}

func firstDoneColumn(entityType string) (string, error) {
	switch entityType {
	case "resume":
		return "first_resume_done", nil
	case "vacancy":
		return "first_vacancy_done", nil
	default:
		return "", fmt.Errorf("unknown entity type %q", entityType)
	}
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
