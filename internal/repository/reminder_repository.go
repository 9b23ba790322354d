package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/innovax/lunch-api/internal/models"
)

// ReminderRepository persists the scheduler configuration singleton and its
// email template. The fixed primary key keeps at most one config row.
type ReminderRepository struct {
	db *sqlx.DB
}

const reminderSingletonID = "lunch-reminder"

// NewReminderRepository constructs the repository.
func NewReminderRepository(db *sqlx.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// GetConfig returns the scheduler configuration, or sql.ErrNoRows.
func (r *ReminderRepository) GetConfig(ctx context.Context) (*models.ReminderConfig, error) {
	const query = `SELECT id, name, email_time, template_id, is_active, last_sent_date, updated_at
FROM reminder_config WHERE id = $1`
	var cfg models.ReminderConfig
	if err := r.db.GetContext(ctx, &cfg, query, reminderSingletonID); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UpsertConfig replaces the singleton configuration.
func (r *ReminderRepository) UpsertConfig(ctx context.Context, cfg *models.ReminderConfig) error {
	cfg.ID = reminderSingletonID
	if cfg.Name == "" {
		cfg.Name = "Lunch Reminder Configuration"
	}
	cfg.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO reminder_config (id, name, email_time, template_id, is_active, last_sent_date, updated_at)
VALUES (:id, :name, :email_time, :template_id, :is_active, :last_sent_date, :updated_at)
ON CONFLICT (id)
DO UPDATE SET name = EXCLUDED.name, email_time = EXCLUDED.email_time, template_id = EXCLUDED.template_id,
              is_active = EXCLUDED.is_active, last_sent_date = EXCLUDED.last_sent_date, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, cfg); err != nil {
		return fmt.Errorf("upsert reminder config: %w", err)
	}
	return nil
}

// SetLastSentDate marks the day as dispatched. Passing nil clears the guard
// (manual send-now).
func (r *ReminderRepository) SetLastSentDate(ctx context.Context, date *time.Time) error {
	const query = `UPDATE reminder_config SET last_sent_date = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, reminderSingletonID, date, time.Now().UTC()); err != nil {
		return fmt.Errorf("set reminder last sent date: %w", err)
	}
	return nil
}

// GetTemplate fetches an email template by id.
func (r *ReminderRepository) GetTemplate(ctx context.Context, id string) (*models.EmailTemplate, error) {
	const query = `SELECT id, name, subject, body_html, created_at FROM email_templates WHERE id = $1`
	var tpl models.EmailTemplate
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// CreateTemplate inserts a template.
func (r *ReminderRepository) CreateTemplate(ctx context.Context, tpl *models.EmailTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	tpl.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO email_templates (id, name, subject, body_html, created_at)
VALUES (:id, :name, :subject, :body_html, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, tpl); err != nil {
		return fmt.Errorf("insert email template: %w", err)
	}
	return nil
}
