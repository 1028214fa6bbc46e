package recurrence

import (
	"slices"
	"time"

	"github.com/samber/mo"
)

// weeklyIterator visits every interval-th week, counted from the week of the
// seed, and yields the rule's weekdays in it. Without weekdays the seed's
// weekday is used.
type weeklyIterator struct {
	iteratorBase
	mode Mode
}

func (it *weeklyIterator) enumerate(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, yield Consumer) {
	e := it.begin(rule, anchor, windowStart, cal, weekdaysPlain)

	weekStart := cal.FirstWeekday()
	if it.mode == EventKit {
		weekStart = time.Sunday
	}

	weekdays := resolveWeekdays(rule.DaysOfTheWeek)
	if len(weekdays) == 0 {
		weekdays = []time.Weekday{cal.Components(e.seed).Weekday}
	}

	e.run(&weeklyStepper{
		cal:       cal,
		seed:      e.seed,
		interval:  rule.interval(),
		weekStart: weekStart,
		weekdays:  weekdays,
	}, yield)
}

type weeklyStepper struct {
	cal       Calendar
	seed      time.Time
	interval  int
	weekStart time.Weekday
	weekdays  []time.Weekday
}

func (s *weeklyStepper) first() (int, bool) {
	wd := s.cal.Components(s.seed).Weekday
	return -daysFromWeekStart(wd, s.weekStart), true
}

func (s *weeklyStepper) candidates(offset int, dst []int) ([]int, bool) {
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(s.weekStart) + i) % 7)
		if slices.Contains(s.weekdays, wd) {
			dst = append(dst, offset+i)
		}
	}
	return dst, true
}

func (s *weeklyStepper) next(offset int) (int, bool) {
	return offset + 7*s.interval, true
}
