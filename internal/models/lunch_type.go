package models

import "time"

// LunchType is an admin-maintained lunch category ("Veg", "Non-Veg").
// Records reference types, they never own them.
type LunchType struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Cost      float64   `db:"cost" json:"cost"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
