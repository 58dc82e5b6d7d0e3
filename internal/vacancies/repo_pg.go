package vacancies

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo stores vacancies in PostgreSQL.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, vacancy Vacancy) error {
	const query = `
INSERT INTO vacancies (
  id, owner_id, position, position_category, salary_min, salary_max, city,
  required_experience, required_education, required_skills, employment_type,
  work_schedule, description, responsibilities, cuisines, is_anonymous,
  publication_duration_days, status, views_count, responses_count,
  created_at, published_at, expires_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
  $17, $18, $19, $20, $21, $22, $23)`
	skills, cuisines, err := marshalCollections(vacancy)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		vacancy.ID,
		vacancy.OwnerID,
		vacancy.Position,
		vacancy.PositionCategory,
		vacancy.SalaryMin,
		vacancy.SalaryMax,
		nullableString(vacancy.City),
		nullableString(vacancy.RequiredExperience),
		nullableString(vacancy.RequiredEducation),
		skills,
		nullableString(vacancy.EmploymentType),
		nullableString(vacancy.WorkSchedule),
		vacancy.Description,
		vacancy.Responsibilities,
		cuisines,
		vacancy.IsAnonymous,
		vacancy.PublicationDurationDays,
		string(vacancy.Status),
		vacancy.ViewsCount,
		vacancy.ResponsesCount,
		vacancy.CreatedAt,
		vacancy.PublishedAt,
		vacancy.ExpiresAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Vacancy, error) {
	const query = selectVacancy + ` WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	vacancy, err := scanVacancy(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Vacancy{}, ErrNotFound
		}
		return Vacancy{}, err
	}
	return vacancy, nil
}

func (r *PGRepo) Update(ctx context.Context, vacancy Vacancy) error {
	const query = `
UPDATE vacancies SET
  position = $2,
  position_category = $3,
  salary_min = $4,
  salary_max = $5,
  city = $6,
  required_experience = $7,
  required_education = $8,
  required_skills = $9,
  employment_type = $10,
  work_schedule = $11,
  description = $12,
  responsibilities = $13,
  cuisines = $14,
  is_anonymous = $15,
  publication_duration_days = $16
WHERE id = $1`
	skills, cuisines, err := marshalCollections(vacancy)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		vacancy.ID,
		vacancy.Position,
		vacancy.PositionCategory,
		vacancy.SalaryMin,
		vacancy.SalaryMax,
		nullableString(vacancy.City),
		nullableString(vacancy.RequiredExperience),
		nullableString(vacancy.RequiredEducation),
		skills,
		nullableString(vacancy.EmploymentType),
		nullableString(vacancy.WorkSchedule),
		vacancy.Description,
		vacancy.Responsibilities,
		cuisines,
		vacancy.IsAnonymous,
		vacancy.PublicationDurationDays,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Vacancy, error) {
	const query = selectVacancy + ` WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVacancies(rows)
}

func (r *PGRepo) ListActive(ctx context.Context) ([]Vacancy, error) {
	const query = selectVacancy + ` WHERE status = 'active' ORDER BY published_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVacancies(rows)
}

func (r *PGRepo) ListExpired(ctx context.Context, now time.Time) ([]Vacancy, error) {
	const query = selectVacancy + ` WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at <= $1`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVacancies(rows)
}

func (r *PGRepo) SetStatus(ctx context.Context, id string, status Status, publishedAt, expiresAt *time.Time) error {
	const query = `
UPDATE vacancies SET
  status = $2,
  published_at = COALESCE(published_at, $3),
  expires_at = COALESCE($4, expires_at)
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(status), publishedAt, expiresAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) IncrementViews(ctx context.Context, id string) error {
	const query = `UPDATE vacancies SET views_count = views_count + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) IncrementResponses(ctx context.Context, id string) error {
	const query = `UPDATE vacancies SET responses_count = responses_count + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const selectVacancy = `
SELECT id, owner_id, position, position_category, salary_min, salary_max, city,
  required_experience, required_education, required_skills, employment_type,
  work_schedule, description, responsibilities, cuisines, is_anonymous,
  publication_duration_days, status, views_count, responses_count,
  created_at, published_at, expires_at
FROM vacancies`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVacancy(row rowScanner) (Vacancy, error) {
	var vacancy Vacancy
	var salaryMin, salaryMax sql.NullInt64
	var city, reqExp, reqEdu, empType, schedule sql.NullString
	var status string
	var publishedAt, expiresAt sql.NullTime
	var skills, cuisines []byte

	err := row.Scan(
		&vacancy.ID,
		&vacancy.OwnerID,
		&vacancy.Position,
		&vacancy.PositionCategory,
		&salaryMin,
		&salaryMax,
		&city,
		&reqExp,
		&reqEdu,
		&skills,
		&empType,
		&schedule,
		&vacancy.Description,
		&vacancy.Responsibilities,
		&cuisines,
		&vacancy.IsAnonymous,
		&vacancy.PublicationDurationDays,
		&status,
		&vacancy.ViewsCount,
		&vacancy.ResponsesCount,
		&vacancy.CreatedAt,
		&publishedAt,
		&expiresAt,
	)
	if err != nil {
		return Vacancy{}, err
	}

	if salaryMin.Valid {
		vacancy.SalaryMin = &salaryMin.Int64
	}
	if salaryMax.Valid {
		vacancy.SalaryMax = &salaryMax.Int64
	}
	if city.Valid {
		vacancy.City = city.String
	}
	if reqExp.Valid {
		vacancy.RequiredExperience = reqExp.String
	}
	if reqEdu.Valid {
		vacancy.RequiredEducation = reqEdu.String
	}
	if empType.Valid {
		vacancy.EmploymentType = empType.String
	}
	if schedule.Valid {
		vacancy.WorkSchedule = schedule.String
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		vacancy.PublishedAt = &t
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		vacancy.ExpiresAt = &t
	}
	vacancy.Status = Status(status)

	if err := json.Unmarshal(skills, &vacancy.RequiredSkills); err != nil {
		return Vacancy{}, err
	}
	if err := json.Unmarshal(cuisines, &vacancy.Cuisines); err != nil {
		return Vacancy{}, err
	}
	return vacancy, nil
}

func scanVacancies(rows *sql.Rows) ([]Vacancy, error) {
	var out []Vacancy
	for rows.Next() {
		vacancy, err := scanVacancy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, vacancy)
	}
	return out, rows.Err()
}

func marshalCollections(vacancy Vacancy) (skills, cuisines []byte, err error) {
	if skills, err = json.Marshal(emptyIfNil(vacancy.RequiredSkills)); err != nil {
		return
	}
	cuisines, err = json.Marshal(emptyIfNil(vacancy.Cuisines))
	return
}

func emptyIfNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
