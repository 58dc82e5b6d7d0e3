package responses

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo stores responses in PostgreSQL.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, response Response) error {
	const query = `
INSERT INTO responses (id, resume_id, vacancy_id, status, is_invitation, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		response.ID,
		response.ResumeID,
		response.VacancyID,
		string(response.Status),
		response.IsInvitation,
		response.Message,
		response.CreatedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Response, error) {
	const query = selectResponse + ` WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	response, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Response{}, ErrNotFound
		}
		return Response{}, err
	}
	return response, nil
}

func (r *PGRepo) ListByVacancy(ctx context.Context, vacancyID string) ([]Response, error) {
	const query = selectResponse + ` WHERE vacancy_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, vacancyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

func (r *PGRepo) ListByResume(ctx context.Context, resumeID string) ([]Response, error) {
	const query = selectResponse + ` WHERE resume_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResponses(rows)
}

func (r *PGRepo) Exists(ctx context.Context, resumeID, vacancyID string, isInvitation bool) (bool, error) {
	const query = `
SELECT EXISTS (
  SELECT 1 FROM responses
  WHERE resume_id = $1 AND vacancy_id = $2 AND is_invitation = $3
)`
	var exists bool
	err := r.DB.QueryRowContext(ctx, query, resumeID, vacancyID, isInvitation).Scan(&exists)
	return exists, err
}

func (r *PGRepo) SetStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE responses SET status = $2 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(status))
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectResponse = `
SELECT id, resume_id, vacancy_id, status, is_invitation, message, created_at
FROM responses`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResponse(row rowScanner) (Response, error) {
	var response Response
	var status string
	err := row.Scan(
		&response.ID,
		&response.ResumeID,
		&response.VacancyID,
		&status,
		&response.IsInvitation,
		&response.Message,
		&response.CreatedAt,
	)
	if err != nil {
		return Response{}, err
	}
	response.Status = Status(status)
	return response, nil
}

func scanResponses(rows *sql.Rows) ([]Response, error) {
	var out []Response
	for rows.Next() {
		response, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, response)
	}
	return out, rows.Err()
}
