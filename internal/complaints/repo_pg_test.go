package complaints

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	complaint := Complaint{
		ID:         "complaint-1",
		ReporterID: 100,
		TargetType: TargetVacancy,
		TargetID:   "vacancy-1",
		Reason:     "spam",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO complaints").
		WithArgs(
			complaint.ID,
			complaint.ReporterID,
			"vacancy",
			complaint.TargetID,
			complaint.Reason,
			complaint.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), complaint); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLastByReporterNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT id, reporter_id, target_type, target_id, reason, created_at FROM complaints").
		WithArgs(int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reporter_id", "target_type", "target_id", "reason", "created_at"}))

	_, err = repo.LastByReporter(context.Background(), 100)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoCountByReporterSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	since := time.Now().UTC().Add(-24 * time.Hour)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM complaints`).
		WithArgs(int64(100), since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountByReporterSince(context.Background(), 100, since)
	if err != nil {
		t.Fatalf("CountByReporterSince: %v", err)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}
