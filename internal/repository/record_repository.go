package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/innovax/lunch-api/internal/models"
)

// ErrActiveRecordExists is returned when the partial unique index on
// (employee_id, date) for non-cancelled records rejects an insert. It backs
// the application-level duplicate pre-check so concurrent creators cannot
// race past it.
var ErrActiveRecordExists = errors.New("active lunch record already exists for employee and date")

const pqUniqueViolation = "23505"

const recordColumns = `lr.id, lr.employee_id, lr.date, lr.lunch_type_id, lr.note, lr.state, lr.is_admin_request, lr.created_at, lr.updated_at`

const recordDetailColumns = recordColumns + `,
        e.name AS employee_name, lt.name AS lunch_type_name, lt.cost AS cost`

const recordJoins = `FROM lunch_records lr
JOIN employees e ON e.id = lr.employee_id
JOIN lunch_types lt ON lt.id = lr.lunch_type_id`

// LunchRecordRepository handles persistence for lunch records.
type LunchRecordRepository struct {
	db *sqlx.DB
}

// NewLunchRecordRepository constructs the repository.
func NewLunchRecordRepository(db *sqlx.DB) *LunchRecordRepository {
	return &LunchRecordRepository{db: db}
}

// Create inserts a new record. A unique violation on the active-record
// index surfaces as ErrActiveRecordExists.
func (r *LunchRecordRepository) Create(ctx context.Context, record *models.LunchRecord) error {
	now := time.Now().UTC()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.CreatedAt = now
	record.UpdatedAt = now

	const query = `INSERT INTO lunch_records (id, employee_id, date, lunch_type_id, note, state, is_admin_request, created_at, updated_at)
VALUES (:id, :employee_id, :date, :lunch_type_id, :note, :state, :is_admin_request, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, record); err != nil {
		if isUniqueViolation(err) {
			return ErrActiveRecordExists
		}
		return fmt.Errorf("insert lunch record: %w", err)
	}
	return nil
}

// FindByID fetches a single record with employee and type metadata.
func (r *LunchRecordRepository) FindByID(ctx context.Context, id string) (*models.LunchRecordDetail, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE lr.id = $1`, recordDetailColumns, recordJoins)
	var record models.LunchRecordDetail
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindActive returns the non-cancelled record for (employee, date), or
// sql.ErrNoRows when none exists.
func (r *LunchRecordRepository) FindActive(ctx context.Context, employeeID string, date time.Time) (*models.LunchRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM lunch_records lr WHERE lr.employee_id = $1 AND lr.date = $2 AND lr.state <> 'cancelled' LIMIT 1`, recordColumns)
	var record models.LunchRecord
	if err := r.db.GetContext(ctx, &record, query, employeeID, date); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns detail rows matching the filter, newest date first.
func (r *LunchRecordRepository) List(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("lr.employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("e.user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("lr.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("lr.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if filter.State != nil && filter.State.Valid() {
		where = append(where, fmt.Sprintf("lr.state = $%d", len(args)+1))
		args = append(args, *filter.State)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY lr.date DESC, e.name ASC LIMIT %d OFFSET %d`,
		recordDetailColumns, recordJoins, whereClause, size, offset)

	var rows []models.LunchRecordDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list lunch records: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s WHERE %s", recordJoins, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count lunch records: %w", err)
	}
	return rows, total, nil
}

// ListForReport returns every detail row matching the filter without
// pagination, oldest date first. Report ranges are bounded by the required
// dateFrom/dateTo filter so the result set stays manageable.
func (r *LunchRecordRepository) ListForReport(ctx context.Context, filter models.LunchRecordFilter) ([]models.LunchRecordDetail, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.EmployeeID != "" {
		where = append(where, fmt.Sprintf("lr.employee_id = $%d", len(args)+1))
		args = append(args, filter.EmployeeID)
	}
	if filter.UserID != "" {
		where = append(where, fmt.Sprintf("e.user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.DateFrom != nil {
		where = append(where, fmt.Sprintf("lr.date >= $%d", len(args)+1))
		args = append(args, *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where = append(where, fmt.Sprintf("lr.date <= $%d", len(args)+1))
		args = append(args, *filter.DateTo)
	}
	if filter.State != nil && filter.State.Valid() {
		where = append(where, fmt.Sprintf("lr.state = $%d", len(args)+1))
		args = append(args, *filter.State)
	}

	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY lr.date ASC, e.name ASC`,
		recordDetailColumns, recordJoins, strings.Join(where, " AND "))

	var rows []models.LunchRecordDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lunch records for report: %w", err)
	}
	return rows, nil
}

// Update persists mutable fields of an existing record. State changes pass
// through here too; the service layer owns transition legality.
func (r *LunchRecordRepository) Update(ctx context.Context, record *models.LunchRecord) error {
	record.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lunch_records
SET employee_id = :employee_id, date = :date, lunch_type_id = :lunch_type_id, note = :note,
    state = :state, is_admin_request = :is_admin_request, updated_at = :updated_at
WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrActiveRecordExists
		}
		return fmt.Errorf("update lunch record: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update lunch record: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetState transitions a record without touching other fields.
func (r *LunchRecordRepository) SetState(ctx context.Context, id string, state models.RecordState) error {
	const query = `UPDATE lunch_records SET state = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, state, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set lunch record state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set lunch record state: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
