package recurrence

import (
	"testing"
	"time"

	"github.com/samber/mo"
)

func TestMonthlyIterator(t *testing.T) {
	tests := []struct {
		name  string
		rule  Rule
		start time.Time
		want  []time.Time
	}{
		{
			name: "anchor day skips short months",
			rule: Rule{Frequency: Monthly, End: EndAfter(4), Start: mo.Some(at(2024, 1, 31))},
			want: []time.Time{at(2024, 1, 31), at(2024, 3, 31), at(2024, 5, 31), at(2024, 7, 31)},
		},
		{
			name: "last day of the month",
			rule: Rule{Frequency: Monthly, End: EndAfter(4), DaysOfTheMonth: []int{-1}, Start: mo.Some(at(2024, 1, 31))},
			want: []time.Time{at(2024, 1, 31), at(2024, 2, 29), at(2024, 3, 31), at(2024, 4, 30)},
		},
		{
			name:  "second to last day without anchor",
			rule:  Rule{Frequency: Monthly, End: EndAfter(3), DaysOfTheMonth: []int{-2}},
			start: at(2023, 2, 1),
			want:  []time.Time{at(2023, 2, 27), at(2023, 3, 30), at(2023, 4, 29)},
		},
		{
			name: "second tuesday",
			rule: Rule{Frequency: Monthly, End: EndAfter(4), DaysOfTheWeek: []DayOfWeek{Nth(2, time.Tuesday)}, Start: mo.Some(at(2024, 1, 9))},
			want: []time.Time{at(2024, 1, 9), at(2024, 2, 13), at(2024, 3, 12), at(2024, 4, 9)},
		},
		{
			name: "last friday",
			rule: Rule{Frequency: Monthly, End: EndAfter(3), DaysOfTheWeek: []DayOfWeek{Nth(-1, time.Friday)}, Start: mo.Some(at(2024, 1, 26))},
			want: []time.Time{at(2024, 1, 26), at(2024, 2, 23), at(2024, 3, 29)},
		},
		{
			name: "every other month",
			rule: Rule{Frequency: Monthly, Interval: 2, End: EndAfter(3), DaysOfTheMonth: []int{15}, Start: mo.Some(at(2024, 1, 15))},
			want: []time.Time{at(2024, 1, 15), at(2024, 3, 15), at(2024, 5, 15)},
		},
		{
			name: "month filter keeps anchor",
			rule: Rule{Frequency: Monthly, End: EndAfter(3), MonthsOfTheYear: []int{3, 6}, Start: mo.Some(at(2024, 1, 10))},
			want: []time.Time{at(2024, 1, 10), at(2024, 3, 10), at(2024, 6, 10)},
		},
		{
			name: "first monday through day range",
			rule: Rule{
				Frequency:      Monthly,
				End:            EndAfter(3),
				DaysOfTheMonth: []int{1, 2, 3, 4, 5, 6, 7},
				DaysOfTheWeek:  []DayOfWeek{Every(time.Monday)},
				Start:          mo.Some(at(2024, 1, 1)),
			},
			want: []time.Time{at(2024, 1, 1), at(2024, 2, 5), at(2024, 3, 4)},
		},
		{
			name: "every weekday of the month",
			rule: Rule{Frequency: Monthly, End: EndAfter(5), DaysOfTheWeek: []DayOfWeek{Every(time.Thursday)}, Start: mo.Some(at(2024, 2, 1))},
			want: []time.Time{at(2024, 2, 1), at(2024, 2, 8), at(2024, 2, 15), at(2024, 2, 22), at(2024, 2, 29)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tt.start
			if start.IsZero() {
				start = tt.rule.Start.MustGet()
			}
			got := collect(t, tt.rule, start, 100)
			assertDates(t, tt.want, got)
		})
	}
}
