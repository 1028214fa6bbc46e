package recurrence

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/require"
)

func TestWeeklyIterator(t *testing.T) {
	tests := []struct {
		name string
		rule Rule
		opts []Option
		want []time.Time
	}{
		{
			name: "anchor weekday by default",
			rule: Rule{Frequency: Weekly, End: EndAfter(3), Start: mo.Some(at(2024, 1, 3))},
			want: []time.Time{at(2024, 1, 3), at(2024, 1, 10), at(2024, 1, 17)},
		},
		{
			name: "several weekdays",
			rule: Rule{
				Frequency:     Weekly,
				End:           EndAfter(5),
				DaysOfTheWeek: []DayOfWeek{Every(time.Monday), Every(time.Wednesday), Every(time.Friday)},
				Start:         mo.Some(at(2024, 1, 1)),
			},
			want: []time.Time{at(2024, 1, 1), at(2024, 1, 3), at(2024, 1, 5), at(2024, 1, 8), at(2024, 1, 10)},
		},
		{
			name: "every other week",
			rule: Rule{
				Frequency:     Weekly,
				Interval:      2,
				End:           EndAfter(4),
				DaysOfTheWeek: []DayOfWeek{Every(time.Tuesday), Every(time.Thursday)},
				Start:         mo.Some(at(2024, 1, 2)),
			},
			want: []time.Time{at(2024, 1, 2), at(2024, 1, 4), at(2024, 1, 16), at(2024, 1, 18)},
		},
		{
			name: "weeks starting monday",
			rule: Rule{
				Frequency:         Weekly,
				Interval:          2,
				End:               EndAfter(4),
				DaysOfTheWeek:     []DayOfWeek{Every(time.Tuesday), Every(time.Sunday)},
				FirstDayOfTheWeek: mo.Some(time.Monday),
				Start:             mo.Some(at(1997, 8, 5)),
			},
			want: []time.Time{at(1997, 8, 5), at(1997, 8, 10), at(1997, 8, 19), at(1997, 8, 24)},
		},
		{
			name: "weeks starting sunday",
			rule: Rule{
				Frequency:         Weekly,
				Interval:          2,
				End:               EndAfter(4),
				DaysOfTheWeek:     []DayOfWeek{Every(time.Tuesday), Every(time.Sunday)},
				FirstDayOfTheWeek: mo.Some(time.Sunday),
				Start:             mo.Some(at(1997, 8, 5)),
			},
			want: []time.Time{at(1997, 8, 5), at(1997, 8, 17), at(1997, 8, 19), at(1997, 8, 31)},
		},
		{
			name: "eventkit mode ignores the first day of the week",
			rule: Rule{
				Frequency:         Weekly,
				Interval:          2,
				End:               EndAfter(4),
				DaysOfTheWeek:     []DayOfWeek{Every(time.Tuesday), Every(time.Sunday)},
				FirstDayOfTheWeek: mo.Some(time.Monday),
				Start:             mo.Some(at(1997, 8, 5)),
			},
			opts: []Option{WithMode(EventKit)},
			want: []time.Time{at(1997, 8, 5), at(1997, 8, 17), at(1997, 8, 19), at(1997, 8, 31)},
		},
		{
			name: "anchor outside weekdays",
			rule: Rule{
				Frequency:     Weekly,
				End:           EndAfter(3),
				DaysOfTheWeek: []DayOfWeek{Every(time.Tuesday)},
				Start:         mo.Some(at(2024, 1, 7)), // Sunday
			},
			want: []time.Time{at(2024, 1, 7), at(2024, 1, 9), at(2024, 1, 16)},
		},
		{
			name: "month filter",
			rule: Rule{
				Frequency:       Weekly,
				End:             EndAfter(3),
				MonthsOfTheYear: []int{2},
				Start:           mo.Some(at(2024, 1, 22)), // Monday
			},
			want: []time.Time{at(2024, 1, 22), at(2024, 2, 5), at(2024, 2, 12)},
		},
		{
			name: "excluded week",
			rule: Rule{Frequency: Weekly, End: EndAfter(3), Start: mo.Some(at(2024, 1, 1))},
			opts: []Option{WithExclusionDates(at(2024, 1, 8))},
			want: []time.Time{at(2024, 1, 1), at(2024, 1, 15), at(2024, 1, 22)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(t, tt.rule, tt.rule.Start.MustGet(), 100, tt.opts...)
			assertDates(t, tt.want, got)
		})
	}
}

func TestWeeklyStepper_First(t *testing.T) {
	tests := []struct {
		name      string
		weekStart time.Weekday
		date      time.Time
		want      time.Time
	}{
		{"monday week from wednesday", time.Monday, at(2024, 1, 3), at(2024, 1, 1)},
		{"monday week from sunday", time.Monday, at(2024, 1, 7), at(2024, 1, 1)},
		{"monday week from monday", time.Monday, at(2024, 1, 8), at(2024, 1, 8)},
		{"sunday week from saturday", time.Sunday, at(2024, 1, 6), at(2023, 12, 31)},
		{"sunday week from sunday", time.Sunday, at(2024, 1, 7), at(2024, 1, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := NewCalendar(time.UTC, time.Monday)
			st := &weeklyStepper{cal: cal, seed: tt.date, interval: 1, weekStart: tt.weekStart}
			offset, ok := st.first()
			require.True(t, ok)
			got, ok := cal.AddDays(tt.date, offset)
			require.True(t, ok)
			assertDates(t, []time.Time{tt.want}, []time.Time{got})
		})
	}
}
