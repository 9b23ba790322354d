package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovax/lunch-api/internal/models"
)

func newTimingRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestLunchTimingRepositoryGet(t *testing.T) {
	db, mock, cleanup := newTimingRepoMock(t)
	defer cleanup()

	repo := NewLunchTimingRepository(db)
	rows := sqlmock.NewRows([]string{"id", "start_time", "end_time", "note", "updated_at"}).
		AddRow(lunchTimingSingletonID, 11.0, 14.5, nil, time.Now())
	mock.ExpectQuery("SELECT id, start_time, end_time").
		WithArgs(lunchTimingSingletonID).
		WillReturnRows(rows)

	timing, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 11.0, timing.StartTime)
	assert.Equal(t, 14.5, timing.EndTime)
}

func TestLunchTimingRepositoryGetNotConfigured(t *testing.T) {
	db, mock, cleanup := newTimingRepoMock(t)
	defer cleanup()

	repo := NewLunchTimingRepository(db)
	mock.ExpectQuery("SELECT id, start_time, end_time").
		WithArgs(lunchTimingSingletonID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestLunchTimingRepositoryUpsertPinsSingletonID(t *testing.T) {
	db, mock, cleanup := newTimingRepoMock(t)
	defer cleanup()

	repo := NewLunchTimingRepository(db)
	mock.ExpectExec("INSERT INTO lunch_timing").
		WillReturnResult(sqlmock.NewResult(1, 1))

	timing := &models.LunchTiming{ID: "anything-else", StartTime: 11, EndTime: 14.5}
	require.NoError(t, repo.Upsert(context.Background(), timing))
	assert.Equal(t, lunchTimingSingletonID, timing.ID)
}
