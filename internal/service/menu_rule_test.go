package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayMenuRuleTypeNameFor(t *testing.T) {
	rule := WeekdayMenuRule{}

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"monday is non-veg", time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), LunchTypeNonVeg},
		{"tuesday is veg", time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), LunchTypeVeg},
		{"wednesday is veg", time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), LunchTypeVeg},
		{"thursday is veg", time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC), LunchTypeVeg},
		{"friday is non-veg", time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC), LunchTypeNonVeg},
		{"sunday is veg", time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), LunchTypeVeg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.TypeNameFor(tt.date))
		})
	}
}

func TestWeekdayMenuRuleIsHoliday(t *testing.T) {
	rule := WeekdayMenuRule{}

	saturday := time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	assert.True(t, rule.IsHoliday(saturday))
	assert.False(t, rule.IsHoliday(sunday))
}

func TestNextLunchDateSkipsSaturday(t *testing.T) {
	// Friday: the next lunch day jumps over Saturday to Sunday.
	friday := time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC)
	clock := fixedClock{now: friday}
	assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), NextLunchDate(clock))

	// Any other day: plain tomorrow.
	tuesday := time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
	clock = fixedClock{now: tuesday}
	assert.Equal(t, time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC), NextLunchDate(clock))
}

func TestHourOfDay(t *testing.T) {
	assert.InDelta(t, 14.5, HourOfDay(time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC)), 0.001)
	assert.InDelta(t, 0.0, HourOfDay(time.Date(2025, 6, 3, 0, 0, 59, 0, time.UTC)), 0.001)
	assert.InDelta(t, 23.75, HourOfDay(time.Date(2025, 6, 3, 23, 45, 0, 0, time.UTC)), 0.001)
}

func TestFormatHour(t *testing.T) {
	assert.Equal(t, "09:00", FormatHour(9))
	assert.Equal(t, "14:30", FormatHour(14.5))
	assert.Equal(t, "00:00", FormatHour(0))
	assert.Equal(t, "23:45", FormatHour(23.75))
}
