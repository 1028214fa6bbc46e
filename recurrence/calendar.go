package recurrence

import (
	"time"
)

const (
	minYear = 1
	maxYear = 9999
)

// DateComponents are the calendar fields of a date in a Calendar's time zone
type DateComponents struct {
	Year    int
	Month   time.Month
	Day     int
	Weekday time.Weekday
	YearDay int // 1-based day of the year
}

// Calendar is the date arithmetic the iterators rely on. All methods interpret
// dates in the calendar's own time zone.
type Calendar interface {
	Components(t time.Time) DateComponents
	DaysInMonth(t time.Time) int
	DaysInYear(t time.Time) int

	// AddDays adds n days keeping the wall-clock time. It reports false when
	// the result falls outside the supported year range.
	AddDays(t time.Time, n int) (time.Time, bool)

	SameDay(a, b time.Time) bool
	FirstWeekday() time.Weekday
	Location() *time.Location
}

type gregorianCalendar struct {
	loc          *time.Location
	firstWeekday time.Weekday
}

// NewCalendar returns a proleptic Gregorian calendar in loc whose weeks start
// on firstWeekday. A nil loc means time.Local.
func NewCalendar(loc *time.Location, firstWeekday time.Weekday) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &gregorianCalendar{loc: loc, firstWeekday: firstWeekday}
}

func (c *gregorianCalendar) Components(t time.Time) DateComponents {
	lt := t.In(c.loc)
	y, m, d := lt.Date()
	return DateComponents{
		Year:    y,
		Month:   m,
		Day:     d,
		Weekday: lt.Weekday(),
		YearDay: lt.YearDay(),
	}
}

func (c *gregorianCalendar) DaysInMonth(t time.Time) int {
	lt := t.In(c.loc)
	return daysIn(lt.Month(), lt.Year())
}

func (c *gregorianCalendar) DaysInYear(t time.Time) int {
	if isLeap(t.In(c.loc).Year()) {
		return 366
	}
	return 365
}

func (c *gregorianCalendar) AddDays(t time.Time, n int) (time.Time, bool) {
	r := t.In(c.loc).AddDate(0, 0, n)
	if y := r.Year(); y < minYear || y > maxYear {
		return time.Time{}, false
	}
	return r, true
}

func (c *gregorianCalendar) SameDay(a, b time.Time) bool {
	ay, am, ad := a.In(c.loc).Date()
	by, bm, bd := b.In(c.loc).Date()
	return ay == by && am == bm && ad == bd
}

func (c *gregorianCalendar) FirstWeekday() time.Weekday {
	return c.firstWeekday
}

func (c *gregorianCalendar) Location() *time.Location {
	return c.loc
}

// daysFromWeekStart returns how many days wd lies after weekStart
func daysFromWeekStart(wd, weekStart time.Weekday) int {
	return (int(wd) - int(weekStart) + 7) % 7
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(m time.Month, year int) int {
	switch m {
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}
