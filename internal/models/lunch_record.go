package models

import "time"

// RecordState represents the lifecycle state of a lunch record.
type RecordState string

const (
	RecordStateDraft     RecordState = "draft"
	RecordStateRequested RecordState = "requested"
	RecordStateConfirmed RecordState = "confirmed"
	RecordStateCancelled RecordState = "cancelled"
)

// Valid returns true when the state is a supported value.
func (s RecordState) Valid() bool {
	switch s {
	case RecordStateDraft, RecordStateRequested, RecordStateConfirmed, RecordStateCancelled:
		return true
	default:
		return false
	}
}

// Active reports whether the state counts against the one-record-per-day
// rule. Cancelled records never do.
func (s RecordState) Active() bool {
	return s != RecordStateCancelled
}

// LunchRecord represents a single daily lunch selection. Records are never
// deleted, only transitioned to cancelled.
type LunchRecord struct {
	ID             string      `db:"id" json:"id"`
	EmployeeID     string      `db:"employee_id" json:"employee_id"`
	Date           time.Time   `db:"date" json:"date"`
	LunchTypeID    string      `db:"lunch_type_id" json:"lunch_type_id"`
	Note           *string     `db:"note" json:"note,omitempty"`
	State          RecordState `db:"state" json:"state"`
	IsAdminRequest bool        `db:"is_admin_request" json:"is_admin_request"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at" json:"updated_at"`
}

// Day returns the weekday name derived from the record date.
func (r *LunchRecord) Day() string {
	return r.Date.Weekday().String()
}

// LunchRecordDetail extends the record with employee and lunch type
// metadata for listings and reports. Cost is denormalised from the lunch
// type at read time.
type LunchRecordDetail struct {
	LunchRecord
	EmployeeName  string  `db:"employee_name" json:"employee_name"`
	LunchTypeName string  `db:"lunch_type_name" json:"lunch_type_name"`
	Cost          float64 `db:"cost" json:"cost"`
}

// LunchRecordFilter defines query filters for listings and reports.
type LunchRecordFilter struct {
	EmployeeID string
	UserID     string
	DateFrom   *time.Time
	DateTo     *time.Time
	State      *RecordState
	Page       int
	PageSize   int
}
