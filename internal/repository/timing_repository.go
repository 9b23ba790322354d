package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/innovax/lunch-api/internal/models"
)

// LunchTimingRepository persists the confirmation window singleton. A fixed
// primary key enforces the single-instance invariant at the store layer.
type LunchTimingRepository struct {
	db *sqlx.DB
}

const lunchTimingSingletonID = "lunch-timing"

// NewLunchTimingRepository constructs the repository.
func NewLunchTimingRepository(db *sqlx.DB) *LunchTimingRepository {
	return &LunchTimingRepository{db: db}
}

// Get returns the configured window, or sql.ErrNoRows when unset.
func (r *LunchTimingRepository) Get(ctx context.Context) (*models.LunchTiming, error) {
	const query = `SELECT id, start_time, end_time, note, updated_at FROM lunch_timing WHERE id = $1`
	var timing models.LunchTiming
	if err := r.db.GetContext(ctx, &timing, query, lunchTimingSingletonID); err != nil {
		return nil, err
	}
	return &timing, nil
}

// Upsert replaces the singleton window.
func (r *LunchTimingRepository) Upsert(ctx context.Context, timing *models.LunchTiming) error {
	timing.ID = lunchTimingSingletonID
	timing.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO lunch_timing (id, start_time, end_time, note, updated_at)
VALUES (:id, :start_time, :end_time, :note, :updated_at)
ON CONFLICT (id)
DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time,
              note = EXCLUDED.note, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, timing); err != nil {
		return fmt.Errorf("upsert lunch timing: %w", err)
	}
	return nil
}
