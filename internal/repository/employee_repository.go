package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/innovax/lunch-api/internal/models"
)

// EmployeeRepository reads the HR roster. The roster is synced externally;
// this service never writes it.
type EmployeeRepository struct {
	db *sqlx.DB
}

// NewEmployeeRepository constructs the repository.
func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// FindByID fetches an employee by primary key.
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	const query = `SELECT id, name, work_email, user_id, active, created_at FROM employees WHERE id = $1`
	var emp models.Employee
	if err := r.db.GetContext(ctx, &emp, query, id); err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindByUserID resolves the employee linked to an application user, or
// sql.ErrNoRows when the user has no linked identity.
func (r *EmployeeRepository) FindByUserID(ctx context.Context, userID string) (*models.Employee, error) {
	const query = `SELECT id, name, work_email, user_id, active, created_at FROM employees WHERE user_id = $1 LIMIT 1`
	var emp models.Employee
	if err := r.db.GetContext(ctx, &emp, query, userID); err != nil {
		return nil, err
	}
	return &emp, nil
}

// FindByName resolves an employee by display name, case-insensitively.
func (r *EmployeeRepository) FindByName(ctx context.Context, name string) (*models.Employee, error) {
	const query = `SELECT id, name, work_email, user_id, active, created_at FROM employees WHERE LOWER(name) = LOWER($1) LIMIT 1`
	var emp models.Employee
	if err := r.db.GetContext(ctx, &emp, query, name); err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListActiveWithEmail returns the reminder recipient set: active employees
// carrying a work email.
func (r *EmployeeRepository) ListActiveWithEmail(ctx context.Context) ([]models.Employee, error) {
	const query = `SELECT id, name, work_email, user_id, active, created_at
FROM employees WHERE active = TRUE AND work_email IS NOT NULL AND work_email <> '' ORDER BY name ASC`
	var employees []models.Employee
	if err := r.db.SelectContext(ctx, &employees, query); err != nil {
		return nil, fmt.Errorf("list reminder recipients: %w", err)
	}
	return employees, nil
}
