package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovax/lunch-api/internal/models"
)

func newRecordRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestLunchRecordRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRecordRepoMock(t)
	defer cleanup()

	repo := NewLunchRecordRepository(db)
	mock.ExpectExec("INSERT INTO lunch_records").
		WillReturnResult(sqlmock.NewResult(1, 1))

	record := &models.LunchRecord{
		EmployeeID:  "emp-1",
		Date:        time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		LunchTypeID: "lt-veg",
		State:       models.RecordStateDraft,
	}
	require.NoError(t, repo.Create(context.Background(), record))
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestLunchRecordRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newRecordRepoMock(t)
	defer cleanup()

	repo := NewLunchRecordRepository(db)
	mock.ExpectExec("INSERT INTO lunch_records").
		WillReturnError(&pq.Error{Code: pqUniqueViolation})

	record := &models.LunchRecord{
		EmployeeID:  "emp-1",
		Date:        time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC),
		LunchTypeID: "lt-veg",
		State:       models.RecordStateDraft,
	}
	err := repo.Create(context.Background(), record)
	assert.ErrorIs(t, err, ErrActiveRecordExists)
}

func TestLunchRecordRepositoryFindActiveNoRows(t *testing.T) {
	db, mock, cleanup := newRecordRepoMock(t)
	defer cleanup()

	repo := NewLunchRecordRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM lunch_records lr WHERE lr.employee_id").
		WithArgs("emp-1", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindActive(context.Background(), "emp-1", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLunchRecordRepositoryList(t *testing.T) {
	db, mock, cleanup := newRecordRepoMock(t)
	defer cleanup()

	repo := NewLunchRecordRepository(db)

	now := time.Now()
	columns := []string{
		"id", "employee_id", "date", "lunch_type_id", "note", "state", "is_admin_request",
		"created_at", "updated_at", "employee_name", "lunch_type_name", "cost",
	}
	rows := sqlmock.NewRows(columns).
		AddRow("rec-1", "emp-1", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), "lt-veg", nil,
			"confirmed", false, now, now, "Jane Doe", "Veg", 120.0)

	mock.ExpectQuery("SELECT (.+) FROM lunch_records lr").
		WithArgs("emp-1").
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("emp-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	result, total, err := repo.List(context.Background(), models.LunchRecordFilter{EmployeeID: "emp-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, result, 1)
	assert.Equal(t, "Jane Doe", result[0].EmployeeName)
	assert.Equal(t, models.RecordStateConfirmed, result[0].State)
}

func TestLunchRecordRepositorySetStateNotFound(t *testing.T) {
	db, mock, cleanup := newRecordRepoMock(t)
	defer cleanup()

	repo := NewLunchRecordRepository(db)
	mock.ExpectExec("UPDATE lunch_records SET state").
		WithArgs("rec-missing", models.RecordStateConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetState(context.Background(), "rec-missing", models.RecordStateConfirmed)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
