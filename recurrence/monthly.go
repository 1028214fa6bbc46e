package recurrence

import (
	"slices"
	"time"

	"github.com/samber/mo"
)

// monthlyIterator visits every interval-th month counted from the seed's
// month. Without day filters the seed's day of the month is the only
// candidate, so months too short for it are skipped. With day filters every
// day of the month is a candidate and the filters decide, weekday ordinals
// counting within the month.
type monthlyIterator struct {
	iteratorBase
}

func (it *monthlyIterator) enumerate(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, yield Consumer) {
	e := it.begin(rule, anchor, windowStart, cal, weekdaysInMonth)
	e.run(&monthlyStepper{
		cal:      cal,
		seed:     e.seed,
		interval: rule.interval(),
		seedDay:  cal.Components(e.seed).Day,
		months:   rule.MonthsOfTheYear,
		expand:   len(rule.DaysOfTheMonth) > 0 || len(rule.DaysOfTheWeek) > 0,
	}, yield)
}

type monthlyStepper struct {
	cal      Calendar
	seed     time.Time
	interval int
	seedDay  int
	months   []int
	expand   bool
}

func (s *monthlyStepper) first() (int, bool) {
	return -(s.cal.Components(s.seed).Day - 1), true
}

func (s *monthlyStepper) candidates(offset int, dst []int) ([]int, bool) {
	start, ok := s.cal.AddDays(s.seed, offset)
	if !ok {
		return dst, false
	}
	if len(s.months) > 0 && !slices.Contains(s.months, int(s.cal.Components(start).Month)) {
		return dst, true
	}

	n := s.cal.DaysInMonth(start)
	if !s.expand {
		if s.seedDay <= n {
			dst = append(dst, offset+s.seedDay-1)
		}
		return dst, true
	}
	for d := 0; d < n; d++ {
		dst = append(dst, offset+d)
	}
	return dst, true
}

func (s *monthlyStepper) next(offset int) (int, bool) {
	for k := 0; k < s.interval; k++ {
		start, ok := s.cal.AddDays(s.seed, offset)
		if !ok {
			return offset, false
		}
		offset += s.cal.DaysInMonth(start)
	}
	return offset, true
}
