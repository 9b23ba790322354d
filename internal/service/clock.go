package service

import (
	"fmt"
	"time"
)

// Clock supplies the current moment in the business timezone. All
// day-boundary and window decisions go through it so tests can pin time.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// ZoneClock is the production clock, fixed to a named timezone
// (Asia/Kathmandu for the original deployment).
type ZoneClock struct {
	loc *time.Location
}

// NewZoneClock resolves the timezone once at startup.
func NewZoneClock(name string) (*ZoneClock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return &ZoneClock{loc: loc}, nil
}

// Now returns the current time in the configured zone.
func (c *ZoneClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Today returns midnight of the current date in the configured zone.
func (c *ZoneClock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// HourOfDay converts a moment to the float hour representation used by the
// timing and scheduler windows (fractional part = minutes/60).
func HourOfDay(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60.0
}

// FormatHour renders a float hour as HH:MM for user display.
func FormatHour(hour float64) string {
	h := int(hour)
	m := int((hour - float64(h)) * 60)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// NextLunchDate returns the default date for a new record: tomorrow,
// skipping Saturday forward to Sunday.
func NextLunchDate(clock Clock) time.Time {
	next := clock.Today().AddDate(0, 0, 1)
	if next.Weekday() == time.Saturday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
