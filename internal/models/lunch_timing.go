package models

import "time"

// LunchTiming is the singleton confirmation window configuration.
// StartTime and EndTime are hour-of-day floats in [0,24); fractional parts
// are minutes/60. A window crossing midnight is not supported.
type LunchTiming struct {
	ID        string    `db:"id" json:"id"`
	StartTime float64   `db:"start_time" json:"start_time"`
	EndTime   float64   `db:"end_time" json:"end_time"`
	Note      *string   `db:"note" json:"note,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
