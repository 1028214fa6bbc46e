/*
Package recurrence computes the occurrences of iCalendar (RFC 5545) recurrence
rules: daily, weekly, monthly and yearly frequencies with an interval, month,
day-of-month and weekday filters, a first day of the week, an end date or
count, and exclusion dates.

# Basic Usage

	rule := recurrence.Rule{
		Frequency: recurrence.Daily,
		Interval:  2,
		End:       recurrence.EndAfter(3),
		Start:     mo.Some(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)),
	}
	sched, err := recurrence.New(rule, recurrence.WithTimeZone(time.UTC))
	if err != nil {
		log.Fatal(err)
	}
	for date := range sched.Occurrences(rule.Start.MustGet()) {
		fmt.Println(date) // Jan 1, Jan 3, Jan 5
	}

# Queries

Besides enumeration, a Scheduler answers two questions:

	sched.Includes(date, start, false) // is there an occurrence on date's day?
	sched.NextDate(after, start)       // first occurrence strictly after "after"

Both run a fresh enumeration from start and stop as soon as the answer is
known. Same-day comparisons use the scheduler's own calendar, so they agree
with enumeration around midnight in the configured time zone.

# Matching

DTSTART is always an occurrence unless it is excluded, even when it does not
satisfy the filters. Exclusion dates are never delivered and do not count
towards the rule's count, so a count of 3 with one excluded date still
delivers three dates. Negative days of the month count from the end of the
month (-1 is the last day).

BYSETPOS and BYWEEKNO are not supported; Rule.Validate rejects rules using
them.

# Termination

Enumeration never returns an error. It ends when the end date is passed, the
count is reached, the consumer returns Stop, calendar arithmetic leaves the
years 1-9999, or MaxConsecutiveMisses candidate periods in a row produce no
occurrence. The last case covers rules that can never match, such as
DaysOfTheMonth {31} with MonthsOfTheYear {2}; such rules simply produce no
further dates.

# iCalendar

RuleFromComponent and NewFromComponent build rules from go-ical components,
reading DTSTART, RRULE and EXDATE. Floating values are read in the scheduler's
time zone. Components with RDATE are rejected with ErrUnsupportedFilter.
*/
package recurrence
