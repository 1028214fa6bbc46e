package recurrence

import (
	"slices"
	"time"

	"github.com/samber/mo"
)

// yearlyIterator visits every interval-th year counted from the seed's year.
//
// Candidates per year:
//   - with day-of-month or weekday filters, every day of the selected months
//     (all months when no month filter is set)
//   - with only a month filter, the seed's day in each selected month
//   - otherwise the seed's month and day, so a 29 February seed only recurs
//     in leap years
//
// Weekday ordinals count within the month when a month filter is set, and
// within the year otherwise.
type yearlyIterator struct {
	iteratorBase
}

func (it *yearlyIterator) enumerate(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, yield Consumer) {
	scope := weekdaysInYear
	if len(rule.MonthsOfTheYear) > 0 {
		scope = weekdaysInMonth
	}
	e := it.begin(rule, anchor, windowStart, cal, scope)

	c := cal.Components(e.seed)
	e.run(&yearlyStepper{
		cal:       cal,
		seed:      e.seed,
		interval:  rule.interval(),
		seedMonth: c.Month,
		seedDay:   c.Day,
		months:    rule.MonthsOfTheYear,
		expand:    len(rule.DaysOfTheMonth) > 0 || len(rule.DaysOfTheWeek) > 0,
	}, yield)
}

type yearlyStepper struct {
	cal       Calendar
	seed      time.Time
	interval  int
	seedMonth time.Month
	seedDay   int
	months    []int
	expand    bool
}

func (s *yearlyStepper) first() (int, bool) {
	return -(s.cal.Components(s.seed).YearDay - 1), true
}

func (s *yearlyStepper) selected(m time.Month) bool {
	switch {
	case len(s.months) > 0:
		return slices.Contains(s.months, int(m))
	case s.expand:
		return true
	default:
		return m == s.seedMonth
	}
}

func (s *yearlyStepper) candidates(offset int, dst []int) ([]int, bool) {
	monthOffset := offset
	for m := time.January; m <= time.December; m++ {
		start, ok := s.cal.AddDays(s.seed, monthOffset)
		if !ok {
			return dst, false
		}
		n := s.cal.DaysInMonth(start)
		if s.selected(m) {
			if s.expand {
				for d := 0; d < n; d++ {
					dst = append(dst, monthOffset+d)
				}
			} else if s.seedDay <= n {
				dst = append(dst, monthOffset+s.seedDay-1)
			}
		}
		monthOffset += n
	}
	return dst, true
}

func (s *yearlyStepper) next(offset int) (int, bool) {
	for k := 0; k < s.interval; k++ {
		start, ok := s.cal.AddDays(s.seed, offset)
		if !ok {
			return offset, false
		}
		offset += s.cal.DaysInYear(start)
	}
	return offset, true
}
