package service

import "time"

// Lunch type display names referenced by the weekday rule. The matching
// rows must exist in lunch_types configuration.
const (
	LunchTypeNonVeg = "Non-Veg"
	LunchTypeVeg    = "Veg"
)

// MenuRule maps a calendar date to a lunch type category. It is an
// interface so the hardcoded weekday rule can later become data-driven
// without touching the record lifecycle.
type MenuRule interface {
	TypeNameFor(date time.Time) string
	IsHoliday(date time.Time) bool
}

// WeekdayMenuRule is the fixed business rule: Monday and Friday are
// Non-Veg days, Saturday is the weekly holiday, every other day is Veg.
type WeekdayMenuRule struct{}

// TypeNameFor resolves the category for a date. Callers must reject
// holidays before resolving; the rule itself never errors.
func (WeekdayMenuRule) TypeNameFor(date time.Time) string {
	switch date.Weekday() {
	case time.Monday, time.Friday:
		return LunchTypeNonVeg
	default:
		return LunchTypeVeg
	}
}

// IsHoliday reports whether the date falls on the blocked weekday.
func (WeekdayMenuRule) IsHoliday(date time.Time) bool {
	return date.Weekday() == time.Saturday
}
