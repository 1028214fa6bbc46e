package recurrence

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/mo"
)

// Frequency is the top-level repeat granularity of a rule
type Frequency int

const (
	Daily Frequency = iota + 1
	Weekly
	Monthly
	Yearly
)

func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	case Yearly:
		return "YEARLY"
	default:
		return fmt.Sprintf("Frequency(%d)", int(f))
	}
}

// DayOfWeek is a weekday with an optional ordinal, e.g. {time.Tuesday, 2} is
// the second Tuesday and {time.Friday, -1} the last Friday of the period.
// An Ordinal of 0 means every such weekday. Ordinals are ignored by daily and
// weekly rules.
type DayOfWeek struct {
	Weekday time.Weekday
	Ordinal int
}

// Every returns a DayOfWeek matching every occurrence of the weekday
func Every(wd time.Weekday) DayOfWeek {
	return DayOfWeek{Weekday: wd}
}

// Nth returns a DayOfWeek matching the nth occurrence of the weekday
func Nth(n int, wd time.Weekday) DayOfWeek {
	return DayOfWeek{Weekday: wd, Ordinal: n}
}

type endKind int

const (
	endNever endKind = iota
	endDate
	endCount
)

// End is the termination condition of a rule. The zero value is unbounded.
type End struct {
	kind  endKind
	date  time.Time
	count int
}

// EndOn ends the recurrence after the given date (inclusive)
func EndOn(date time.Time) End {
	return End{kind: endDate, date: date}
}

// EndAfter ends the recurrence after count delivered occurrences
func EndAfter(count int) End {
	return End{kind: endCount, count: count}
}

// Date returns the end date, if the recurrence ends on a date
func (e End) Date() (time.Time, bool) {
	return e.date, e.kind == endDate
}

// Count returns the occurrence count, if the recurrence ends after a count
func (e End) Count() (int, bool) {
	return e.count, e.kind == endCount
}

// IsUnbounded reports whether the recurrence never ends
func (e End) IsUnbounded() bool {
	return e.kind == endNever
}

// Rule is a recurrence rule in the sense of RFC 5545 RRULE.
//
// A Rule must not be mutated while any Scheduler built from it is enumerating;
// New copies the filter slices, so the caller may reuse them afterwards.
type Rule struct {
	Frequency Frequency
	Interval  int // 0 is treated as 1
	End       End

	MonthsOfTheYear []int       // 1-12
	DaysOfTheMonth  []int       // 1..31 or -31..-1, counted from the end of the month
	DaysOfTheWeek   []DayOfWeek // weekday with optional ordinal

	FirstDayOfTheWeek mo.Option[time.Weekday] // defaults to Monday
	Start             mo.Option[time.Time]    // DTSTART

	// Not supported by the engine. Validate rejects rules that set them.
	SetPositions   []int
	WeeksOfTheYear []int
}

// interval returns the effective step multiplier
func (r *Rule) interval() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}

// Validate checks the rule for values the engine cannot enumerate
func (r *Rule) Validate() error {
	switch r.Frequency {
	case Daily, Weekly, Monthly, Yearly:
	default:
		return ruleError("frequency", ErrInvalidFrequency, "unknown frequency %d", int(r.Frequency))
	}

	if r.Interval < 0 {
		return ruleError("interval", ErrInvalidInterval, "interval must be positive, got %d", r.Interval)
	}

	if count, ok := r.End.Count(); ok && count < 0 {
		return ruleError("count", ErrInvalidCount, "count must not be negative, got %d", count)
	}

	for _, m := range r.MonthsOfTheYear {
		if m < 1 || m > 12 {
			return ruleError("monthsOfTheYear", ErrInvalidMonth, "month %d out of range", m)
		}
	}

	for _, d := range r.DaysOfTheMonth {
		if d == 0 || d < -31 || d > 31 {
			return ruleError("daysOfTheMonth", ErrInvalidMonthDay, "day %d out of range", d)
		}
	}

	for _, d := range r.DaysOfTheWeek {
		if d.Weekday < time.Sunday || d.Weekday > time.Saturday {
			return ruleError("daysOfTheWeek", ErrInvalidWeekday, "weekday %d out of range", int(d.Weekday))
		}
		if d.Ordinal < -53 || d.Ordinal > 53 {
			return ruleError("daysOfTheWeek", ErrInvalidOrdinal, "ordinal %d out of range", d.Ordinal)
		}
	}

	if wd, ok := r.FirstDayOfTheWeek.Get(); ok && (wd < time.Sunday || wd > time.Saturday) {
		return ruleError("firstDayOfTheWeek", ErrInvalidWeekday, "weekday %d out of range", int(wd))
	}

	// BYSETPOS and BYWEEKNO are not supported
	if len(r.SetPositions) > 0 {
		return ruleError("setPositions", ErrUnsupportedFilter, "BYSETPOS is not supported")
	}
	if len(r.WeeksOfTheYear) > 0 {
		return ruleError("weeksOfTheYear", ErrUnsupportedFilter, "BYWEEKNO is not supported")
	}

	return nil
}

// clone returns a copy that shares no slices with r
func (r Rule) clone() Rule {
	r.MonthsOfTheYear = slices.Clone(r.MonthsOfTheYear)
	r.DaysOfTheMonth = slices.Clone(r.DaysOfTheMonth)
	r.DaysOfTheWeek = slices.Clone(r.DaysOfTheWeek)
	r.SetPositions = slices.Clone(r.SetPositions)
	r.WeeksOfTheYear = slices.Clone(r.WeeksOfTheYear)
	return r
}
