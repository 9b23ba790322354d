package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/innovax/lunch-api/internal/models"
)

// LunchTypeRepository persists lunch categories.
type LunchTypeRepository struct {
	db *sqlx.DB
}

// NewLunchTypeRepository constructs the repository.
func NewLunchTypeRepository(db *sqlx.DB) *LunchTypeRepository {
	return &LunchTypeRepository{db: db}
}

// List returns all lunch types ordered by name.
func (r *LunchTypeRepository) List(ctx context.Context) ([]models.LunchType, error) {
	const query = `SELECT id, name, cost, note, created_at, updated_at FROM lunch_types ORDER BY name ASC`
	var types []models.LunchType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list lunch types: %w", err)
	}
	return types, nil
}

// FindByID fetches a lunch type by primary key.
func (r *LunchTypeRepository) FindByID(ctx context.Context, id string) (*models.LunchType, error) {
	const query = `SELECT id, name, cost, note, created_at, updated_at FROM lunch_types WHERE id = $1`
	var t models.LunchType
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByName fetches a lunch type by display name, case-insensitively.
func (r *LunchTypeRepository) FindByName(ctx context.Context, name string) (*models.LunchType, error) {
	const query = `SELECT id, name, cost, note, created_at, updated_at FROM lunch_types WHERE LOWER(name) = LOWER($1) LIMIT 1`
	var t models.LunchType
	if err := r.db.GetContext(ctx, &t, query, name); err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a lunch type.
func (r *LunchTypeRepository) Create(ctx context.Context, t *models.LunchType) error {
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	const query = `INSERT INTO lunch_types (id, name, cost, note, created_at, updated_at)
VALUES (:id, :name, :cost, :note, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("insert lunch type: %w", err)
	}
	return nil
}

// Update edits an existing lunch type.
func (r *LunchTypeRepository) Update(ctx context.Context, t *models.LunchType) error {
	t.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lunch_types SET name = :name, cost = :cost, note = :note, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return fmt.Errorf("update lunch type: %w", err)
	}
	return nil
}
