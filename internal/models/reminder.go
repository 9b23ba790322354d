package models

import "time"

// ReminderConfig is the singleton reminder scheduler configuration.
// LastSentDate enforces the at-most-once-per-day dispatch guarantee; it is
// written after every completed pass, even when all sends failed.
type ReminderConfig struct {
	ID           string     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	EmailTime    float64    `db:"email_time" json:"email_time"`
	TemplateID   *string    `db:"template_id" json:"template_id,omitempty"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastSentDate *time.Time `db:"last_sent_date" json:"last_sent_date,omitempty"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// EmailTemplate stores a rendered-per-recipient reminder message body.
type EmailTemplate struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Subject   string    `db:"subject" json:"subject"`
	BodyHTML  string    `db:"body_html" json:"body_html"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
