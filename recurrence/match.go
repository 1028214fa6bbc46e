package recurrence

import (
	"slices"
	"time"

	"github.com/samber/mo"
)

// ExclusionGranularity controls how candidates are compared with exclusion dates
type ExclusionGranularity int

const (
	// SameDay excludes any candidate on the same calendar day as an exclusion date
	SameDay ExclusionGranularity = iota
	// ExactInstant excludes only candidates equal to an exclusion date
	ExactInstant
)

type instantKey struct {
	sec  int64
	nsec int
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// exclusionSet is built once per scheduler and only read afterwards
type exclusionSet struct {
	granularity ExclusionGranularity
	instants    map[instantKey]struct{}
	days        map[dayKey]struct{}
}

func newExclusionSet(dates []time.Time, granularity ExclusionGranularity, cal Calendar) exclusionSet {
	set := exclusionSet{granularity: granularity}
	if len(dates) == 0 {
		return set
	}

	switch granularity {
	case ExactInstant:
		set.instants = make(map[instantKey]struct{}, len(dates))
		for _, d := range dates {
			set.instants[keyOfInstant(d)] = struct{}{}
		}
	default:
		set.days = make(map[dayKey]struct{}, len(dates))
		for _, d := range dates {
			set.days[keyOfDay(cal.Components(d))] = struct{}{}
		}
	}
	return set
}

func keyOfInstant(t time.Time) instantKey {
	return instantKey{sec: t.Unix(), nsec: t.Nanosecond()}
}

func keyOfDay(c DateComponents) dayKey {
	return dayKey{year: c.Year, month: c.Month, day: c.Day}
}

// isExcluded reports whether t matches an exclusion date
func (s exclusionSet) isExcluded(t time.Time, c DateComponents) bool {
	if s.instants != nil {
		_, ok := s.instants[keyOfInstant(t)]
		return ok
	}
	if s.days != nil {
		_, ok := s.days[keyOfDay(c)]
		return ok
	}
	return false
}

func matchesMonthsOfYear(months []int, c DateComponents) bool {
	if len(months) == 0 {
		return true
	}
	return slices.Contains(months, int(c.Month))
}

func matchesDaysOfMonth(days []int, c DateComponents, monthLength int) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d > 0 {
			if d == c.Day {
				return true
			}
		} else if monthLength+d+1 == c.Day {
			return true
		}
	}
	return false
}

func matchesDaysOfWeek(weekdays []time.Weekday, c DateComponents) bool {
	if len(weekdays) == 0 {
		return true
	}
	return slices.Contains(weekdays, c.Weekday)
}

// matchesOrdinalWeekday checks weekday/ordinal pairs against a position within a
// period of periodLength days, where pos is the 1-based day of the period.
func matchesOrdinalWeekday(days []DayOfWeek, wd time.Weekday, pos, periodLength int) bool {
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d.Weekday != wd {
			continue
		}
		switch {
		case d.Ordinal == 0:
			return true
		case d.Ordinal > 0:
			if (pos-1)/7+1 == d.Ordinal {
				return true
			}
		default:
			if (periodLength-pos)/7+1 == -d.Ordinal {
				return true
			}
		}
	}
	return false
}

// resolveWeekdays drops ordinals and duplicates
func resolveWeekdays(days []DayOfWeek) []time.Weekday {
	if len(days) == 0 {
		return nil
	}
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if !slices.Contains(out, d.Weekday) {
			out = append(out, d.Weekday)
		}
	}
	return out
}

// weekdayScope selects how weekday ordinals are interpreted
type weekdayScope int

const (
	weekdaysPlain   weekdayScope = iota // ordinals ignored
	weekdaysInMonth                     // "2nd Tuesday of the month"
	weekdaysInYear                      // "20th Monday of the year"
)

// matcher combines the predicate set for one enumeration
type matcher struct {
	cal       Calendar
	anchor    mo.Option[time.Time]
	excluded  exclusionSet
	months    []int
	monthDays []int
	days      []DayOfWeek
	weekdays  []time.Weekday
	scope     weekdayScope
}

func newMatcher(rule *Rule, anchor mo.Option[time.Time], excluded exclusionSet, cal Calendar, scope weekdayScope) *matcher {
	return &matcher{
		cal:       cal,
		anchor:    anchor,
		excluded:  excluded,
		months:    rule.MonthsOfTheYear,
		monthDays: rule.DaysOfTheMonth,
		days:      rule.DaysOfTheWeek,
		weekdays:  resolveWeekdays(rule.DaysOfTheWeek),
		scope:     scope,
	}
}

// matches reports whether t is an occurrence. The anchor bypasses the filters
// but not the exclusions.
func (m *matcher) matches(t time.Time) bool {
	c := m.cal.Components(t)
	if m.excluded.isExcluded(t, c) {
		return false
	}
	if anchor, ok := m.anchor.Get(); ok && t.Equal(anchor) {
		return true
	}

	if !matchesMonthsOfYear(m.months, c) {
		return false
	}

	monthLength := 0
	if len(m.monthDays) > 0 || m.scope == weekdaysInMonth {
		monthLength = m.cal.DaysInMonth(t)
	}
	if !matchesDaysOfMonth(m.monthDays, c, monthLength) {
		return false
	}

	switch m.scope {
	case weekdaysInMonth:
		return matchesOrdinalWeekday(m.days, c.Weekday, c.Day, monthLength)
	case weekdaysInYear:
		return matchesOrdinalWeekday(m.days, c.Weekday, c.YearDay, m.cal.DaysInYear(t))
	default:
		return matchesDaysOfWeek(m.weekdays, c)
	}
}
