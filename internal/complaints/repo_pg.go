package complaints

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo stores complaints in Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectComplaint = `SELECT id, reporter_id, target_type, target_id, reason, created_at FROM complaints`

func (r *PGRepo) Create(ctx context.Context, complaint Complaint) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO complaints (id, reporter_id, target_type, target_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		complaint.ID, complaint.ReporterID, string(complaint.TargetType),
		complaint.TargetID, complaint.Reason, complaint.CreatedAt,
	)
	return err
}

func (r *PGRepo) LastByReporter(ctx context.Context, reporterID int64) (Complaint, error) {
	row := r.DB.QueryRowContext(ctx,
		selectComplaint+` WHERE reporter_id = $1 ORDER BY created_at DESC LIMIT 1`, reporterID)
	return scanComplaint(row)
}

func (r *PGRepo) CountByReporterSince(ctx context.Context, reporterID int64, since time.Time) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM complaints WHERE reporter_id = $1 AND created_at >= $2`,
		reporterID, since,
	).Scan(&count)
	return count, err
}

func (r *PGRepo) ListByTarget(ctx context.Context, targetType TargetType, targetID string) ([]Complaint, error) {
	rows, err := r.DB.QueryContext(ctx,
		selectComplaint+` WHERE target_type = $1 AND target_id = $2 ORDER BY created_at DESC`,
		string(targetType), targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, complaint)
	}
	return items, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanComplaint(row rowScanner) (Complaint, error) {
	var (
		complaint  Complaint
		targetType string
	)
	err := row.Scan(&complaint.ID, &complaint.ReporterID, &targetType,
		&complaint.TargetID, &complaint.Reason, &complaint.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Complaint{}, ErrNotFound
	}
	if err != nil {
		return Complaint{}, err
	}
	complaint.TargetType = TargetType(targetType)
	return complaint, nil
}
