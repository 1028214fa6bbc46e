package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendar_DaysInMonth(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)

	tests := []struct {
		date time.Time
		want int
	}{
		{at(2024, 1, 15), 31},
		{at(2024, 2, 1), 29},
		{at(2023, 2, 1), 28},
		{at(1900, 2, 1), 28},
		{at(2000, 2, 1), 29},
		{at(2024, 4, 30), 30},
	}

	for _, tt := range tests {
		t.Run(tt.date.Format("2006-01"), func(t *testing.T) {
			assert.Equal(t, tt.want, cal.DaysInMonth(tt.date))
		})
	}

	assert.Equal(t, 366, cal.DaysInYear(at(2024, 6, 1)))
	assert.Equal(t, 365, cal.DaysInYear(at(2100, 6, 1)))
}

func TestCalendar_Components(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)
	c := cal.Components(at(2024, 12, 31))

	assert.Equal(t, DateComponents{
		Year:    2024,
		Month:   time.December,
		Day:     31,
		Weekday: time.Tuesday,
		YearDay: 366,
	}, c)
}

func TestCalendar_ComponentsUseTimeZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	cal := NewCalendar(tokyo, time.Monday)

	// 20:00 UTC on the 31st is already January 1st in Tokyo
	c := cal.Components(time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC))
	assert.Equal(t, 2024, c.Year)
	assert.Equal(t, time.January, c.Month)
	assert.Equal(t, 1, c.Day)
}

func TestCalendar_AddDays(t *testing.T) {
	cal := NewCalendar(time.UTC, time.Monday)

	got, ok := cal.AddDays(at(2024, 2, 28), 2)
	require.True(t, ok)
	assertDates(t, []time.Time{at(2024, 3, 1)}, []time.Time{got})

	got, ok = cal.AddDays(at(2024, 3, 1), -1)
	require.True(t, ok)
	assertDates(t, []time.Time{at(2024, 2, 29)}, []time.Time{got})

	_, ok = cal.AddDays(at(9999, 12, 31), 1)
	assert.False(t, ok)

	_, ok = cal.AddDays(at(1, 1, 1), -1)
	assert.False(t, ok)
}

func TestCalendar_AddDaysKeepsWallClock(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	cal := NewCalendar(ny, time.Monday)

	// crosses the March 2024 DST change
	start := time.Date(2024, 3, 9, 9, 0, 0, 0, ny)
	got, ok := cal.AddDays(start, 2)
	require.True(t, ok)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 11, got.Day())
}

func TestCalendar_SameDay(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	utc := NewCalendar(time.UTC, time.Monday)
	local := NewCalendar(est, time.Monday)

	a := time.Date(2024, 1, 2, 1, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC)

	assert.False(t, utc.SameDay(a, b))
	assert.True(t, local.SameDay(a, b))
}

func TestNewCalendar_NilLocation(t *testing.T) {
	cal := NewCalendar(nil, time.Sunday)
	assert.Equal(t, time.Local, cal.Location())
	assert.Equal(t, time.Sunday, cal.FirstWeekday())
}
