package models

import "time"

// Employee mirrors the HR roster entry a lunch record belongs to. The
// roster itself is maintained by an external HR system; this service only
// reads it.
type Employee struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	WorkEmail *string   `db:"work_email" json:"work_email,omitempty"`
	UserID    *string   `db:"user_id" json:"user_id,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
