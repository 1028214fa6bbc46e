package recurrence

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/samber/mo"
)

// Scheduler enumerates and tests the dates generated by a recurrence rule.
//
// A Scheduler holds no per-call state and may be used from several goroutines.
type Scheduler struct {
	rule     Rule
	calendar Calendar
	iterator iterator
	cache    *QueryCache
	logger   *slog.Logger
}

// New creates a scheduler for rule. The calendar uses the rule's first day of
// the week (Monday if unset) and the configured time zone.
func New(rule Rule, opts ...Option) (*Scheduler, error) {
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	cfg := applyOptions(opts)
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Scheduler{
		rule:     rule.clone(),
		calendar: NewCalendar(cfg.TimeZone, rule.FirstDayOfTheWeek.OrElse(time.Monday)),
		logger:   cfg.Logger,
	}

	base := iteratorBase{
		excluded: newExclusionSet(cfg.ExclusionDates, cfg.ExclusionGranularity, s.calendar),
		logger:   cfg.Logger,
	}
	switch rule.Frequency {
	case Daily:
		s.iterator = &dailyIterator{iteratorBase: base}
	case Weekly:
		s.iterator = &weeklyIterator{iteratorBase: base, mode: cfg.Mode}
	case Monthly:
		s.iterator = &monthlyIterator{iteratorBase: base}
	case Yearly:
		s.iterator = &yearlyIterator{iteratorBase: base}
	}

	if cfg.Cache != nil {
		s.cache = NewQueryCache(*cfg.Cache)
	}

	s.logger.Debug("recurrence scheduler created",
		"frequency", rule.Frequency.String(),
		"interval", rule.interval(),
		"timezone", s.calendar.Location().String(),
		"mode", cfg.Mode.String(),
		"exclusions", len(cfg.ExclusionDates),
		"cache", s.cache != nil)

	return s, nil
}

// Rule returns a copy of the scheduler's rule
func (s *Scheduler) Rule() Rule {
	return s.rule.clone()
}

// Calendar returns the calendar used for enumeration and same-day comparison
func (s *Scheduler) Calendar() Calendar {
	return s.calendar
}

// Enumerate calls yield for each date generated by the rule that is not
// before start, in increasing order, until the rule ends or yield returns Stop.
// Dates before start are still computed so that intervals stay aligned on the
// rule's DTSTART.
func (s *Scheduler) Enumerate(start time.Time, yield Consumer) {
	if yield == nil {
		return
	}
	s.iterator.enumerate(&s.rule, s.rule.Start, start, s.calendar, yield)
}

// Occurrences returns the dates of Enumerate as an iterator
func (s *Scheduler) Occurrences(start time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		s.Enumerate(start, func(date time.Time) Control {
			if !yield(date) {
				return Stop
			}
			return Continue
		})
	}
}

// Includes reports whether date is one of the dates generated by the rule.
// If exact is false, any occurrence on the same calendar day (in the
// scheduler's time zone) matches.
func (s *Scheduler) Includes(date, start time.Time, exact bool) bool {
	var key string
	if s.cache != nil {
		key = queryKey("includes", date, start, exact)
		if v, ok := s.cache.Get(key); ok {
			return v.(bool)
		}
	}

	found := false
	s.Enumerate(start, func(rdate time.Time) Control {
		if (exact && rdate.Equal(date)) || (!exact && s.calendar.SameDay(rdate, date)) {
			found = true
			return Stop
		}
		if rdate.After(date) {
			return Stop
		}
		return Continue
	})

	if s.cache != nil {
		s.cache.Set(key, found)
	}
	return found
}

// NextDate returns the first generated date after date, if any
func (s *Scheduler) NextDate(after, start time.Time) mo.Option[time.Time] {
	var key string
	if s.cache != nil {
		key = queryKey("next", after, start, false)
		if v, ok := s.cache.Get(key); ok {
			return v.(mo.Option[time.Time])
		}
	}

	found := mo.None[time.Time]()
	s.Enumerate(start, func(rdate time.Time) Control {
		if rdate.After(after) {
			found = mo.Some(rdate)
			return Stop
		}
		return Continue
	})

	if s.cache != nil {
		s.cache.Set(key, found)
	}
	return found
}

// Between returns the generated dates in [start, end], at most limit of them
// when limit is positive
func (s *Scheduler) Between(start, end time.Time, limit int) []time.Time {
	var dates []time.Time
	s.Enumerate(start, func(rdate time.Time) Control {
		if rdate.After(end) {
			return Stop
		}
		dates = append(dates, rdate)
		if limit > 0 && len(dates) >= limit {
			return Stop
		}
		return Continue
	})
	return dates
}

// CacheStats returns the query cache statistics, if the cache is enabled
func (s *Scheduler) CacheStats() (CacheStats, bool) {
	if s.cache == nil {
		return CacheStats{}, false
	}
	return s.cache.Stats(), true
}
