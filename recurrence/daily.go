package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// dailyIterator steps interval days at a time. Weekday ordinals are ignored.
type dailyIterator struct {
	iteratorBase
}

func (it *dailyIterator) enumerate(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, yield Consumer) {
	e := it.begin(rule, anchor, windowStart, cal, weekdaysPlain)
	e.run(&dailyStepper{interval: rule.interval()}, yield)
}

type dailyStepper struct {
	interval int
}

func (s *dailyStepper) first() (int, bool) {
	return 0, true
}

func (s *dailyStepper) candidates(offset int, dst []int) ([]int, bool) {
	return append(dst, offset), true
}

func (s *dailyStepper) next(offset int) (int, bool) {
	return offset + s.interval, true
}
