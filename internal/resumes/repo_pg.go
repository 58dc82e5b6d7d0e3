package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo stores resumes in PostgreSQL. Collection-valued fields are kept as
// JSONB columns.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
  id, owner_id, position, desired_salary, salary_type, city, ready_to_relocate,
  skills, experience, education, languages, total_experience_years,
  status, views_count, responses_count, created_at, published_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	skills, experience, education, languages, err := marshalCollections(resume)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.OwnerID,
		resume.Position,
		resume.DesiredSalary,
		nullableString(string(resume.SalaryType)),
		nullableString(resume.City),
		resume.ReadyToRelocate,
		skills,
		experience,
		education,
		languages,
		resume.TotalExperienceYears,
		string(resume.Status),
		resume.ViewsCount,
		resume.ResponsesCount,
		resume.CreatedAt,
		resume.PublishedAt,
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	const query = selectResume + ` WHERE id = $1 LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, id)
	resume, err := scanResume(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) Update(ctx context.Context, resume Resume) error {
	const query = `
UPDATE resumes SET
  position = $2,
  desired_salary = $3,
  salary_type = $4,
  city = $5,
  ready_to_relocate = $6,
  skills = $7,
  experience = $8,
  education = $9,
  languages = $10,
  total_experience_years = $11
WHERE id = $1`
	skills, experience, education, languages, err := marshalCollections(resume)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.Position,
		resume.DesiredSalary,
		nullableString(string(resume.SalaryType)),
		nullableString(resume.City),
		resume.ReadyToRelocate,
		skills,
		experience,
		education,
		languages,
		resume.TotalExperienceYears,
	)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) ListByOwner(ctx context.Context, ownerID int64) ([]Resume, error) {
	const query = selectResume + ` WHERE owner_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResumes(rows)
}

func (r *PGRepo) ListPublished(ctx context.Context) ([]Resume, error) {
	const query = selectResume + ` WHERE status = 'published' ORDER BY published_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResumes(rows)
}

func (r *PGRepo) SetStatus(ctx context.Context, id string, status Status, publishedAt *time.Time) error {
	const query = `
UPDATE resumes SET
  status = $2,
  published_at = COALESCE(published_at, $3)
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(status), publishedAt)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) IncrementViews(ctx context.Context, id string) error {
	const query = `UPDATE resumes SET views_count = views_count + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PGRepo) IncrementResponses(ctx context.Context, id string) error {
	const query = `UPDATE resumes SET responses_count = responses_count + 1 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

const selectResume = `
SELECT id, owner_id, position, desired_salary, salary_type, city, ready_to_relocate,
  skills, experience, education, languages, total_experience_years,
  status, views_count, responses_count, created_at, published_at
FROM resumes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var desiredSalary sql.NullInt64
	var salaryType sql.NullString
	var city sql.NullString
	var totalYears sql.NullFloat64
	var status string
	var publishedAt sql.NullTime
	var skills, experience, education, languages []byte

	err := row.Scan(
		&resume.ID,
		&resume.OwnerID,
		&resume.Position,
		&desiredSalary,
		&salaryType,
		&city,
		&resume.ReadyToRelocate,
		&skills,
		&experience,
		&education,
		&languages,
		&totalYears,
		&status,
		&resume.ViewsCount,
		&resume.ResponsesCount,
		&resume.CreatedAt,
		&publishedAt,
	)
	if err != nil {
		return Resume{}, err
	}

	if desiredSalary.Valid {
		resume.DesiredSalary = &desiredSalary.Int64
	}
	if salaryType.Valid {
		resume.SalaryType = SalaryType(salaryType.String)
	}
	if city.Valid {
		resume.City = city.String
	}
	if totalYears.Valid {
		resume.TotalExperienceYears = &totalYears.Float64
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		resume.PublishedAt = &t
	}
	resume.Status = Status(status)

	if err := json.Unmarshal(skills, &resume.Skills); err != nil {
		return Resume{}, err
	}
	if err := json.Unmarshal(experience, &resume.Experience); err != nil {
		return Resume{}, err
	}
	if err := json.Unmarshal(education, &resume.Education); err != nil {
		return Resume{}, err
	}
	if err := json.Unmarshal(languages, &resume.Languages); err != nil {
		return Resume{}, err
	}
	return resume, nil
}

func scanResumes(rows *sql.Rows) ([]Resume, error) {
	var out []Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func marshalCollections(resume Resume) (skills, experience, education, languages []byte, err error) {
	if skills, err = json.Marshal(emptyIfNil(resume.Skills)); err != nil {
		return
	}
	if experience, err = json.Marshal(resume.Experience); err != nil {
		return
	}
	if experience == nil || string(experience) == "null" {
		experience = []byte("[]")
	}
	if education, err = json.Marshal(emptyIfNil(resume.Education)); err != nil {
		return
	}
	languages, err = json.Marshal(emptyIfNil(resume.Languages))
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
