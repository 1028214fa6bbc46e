package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// RuleFromComponent extracts the recurrence rule, DTSTART and EXDATE values of
// an iCal component. Floating times, including a floating UNTIL, are
// interpreted in loc (time.Local if nil, matching NewCalendar). Components
// carrying RDATE are rejected with ErrUnsupportedFilter.
func RuleFromComponent(comp *ical.Component, loc *time.Location) (Rule, []time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	prop := comp.Props.Get(ical.PropRecurrenceRule)
	if prop == nil {
		return Rule{}, nil, fmt.Errorf("component %s has no RRULE", comp.Name)
	}
	if comp.Props.Get(ical.PropRecurrenceDates) != nil {
		return Rule{}, nil, ruleError("recurrenceDates", ErrUnsupportedFilter, "RDATE is not supported")
	}
	opt, err := rrule.StrToROptionInLocation(prop.Value, loc)
	if err != nil {
		return Rule{}, nil, fmt.Errorf("failed to parse RRULE: %w", err)
	}

	rule, err := RuleFromROption(opt)
	if err != nil {
		return Rule{}, nil, err
	}

	if dtstart := comp.Props.Get(ical.PropDateTimeStart); dtstart != nil {
		start, err := dtstart.DateTime(loc)
		if err != nil {
			return Rule{}, nil, fmt.Errorf("failed to parse DTSTART: %w", err)
		}
		rule.Start = mo.Some(start)
	}

	var exdates []time.Time
	for _, prop := range comp.Props.Values(ical.PropExceptionDates) {
		dates, err := parseExceptionDates(prop, loc)
		if err != nil {
			return Rule{}, nil, err
		}
		exdates = append(exdates, dates...)
	}

	return rule, exdates, nil
}

// RuleFromROption maps a parsed RRULE onto a Rule
func RuleFromROption(opt *rrule.ROption) (Rule, error) {
	rule := Rule{
		Interval:        opt.Interval,
		MonthsOfTheYear: opt.Bymonth,
		DaysOfTheMonth:  opt.Bymonthday,
		SetPositions:    opt.Bysetpos,
		WeeksOfTheYear:  opt.Byweekno,
	}

	switch opt.Freq {
	case rrule.DAILY:
		rule.Frequency = Daily
	case rrule.WEEKLY:
		rule.Frequency = Weekly
	case rrule.MONTHLY:
		rule.Frequency = Monthly
	case rrule.YEARLY:
		rule.Frequency = Yearly
	default:
		return Rule{}, ruleError("frequency", ErrInvalidFrequency, "frequency %v is not supported", opt.Freq)
	}

	switch {
	case len(opt.Byyearday) > 0:
		return Rule{}, ruleError("daysOfTheYear", ErrUnsupportedFilter, "BYYEARDAY is not supported")
	case len(opt.Byhour) > 0 || len(opt.Byminute) > 0 || len(opt.Bysecond) > 0:
		return Rule{}, ruleError("timeOfDay", ErrUnsupportedFilter, "BYHOUR, BYMINUTE and BYSECOND are not supported")
	}

	if opt.Count > 0 {
		rule.End = EndAfter(opt.Count)
	} else if !opt.Until.IsZero() {
		rule.End = EndOn(opt.Until)
	}

	for _, wd := range opt.Byweekday {
		rule.DaysOfTheWeek = append(rule.DaysOfTheWeek, DayOfWeek{
			Weekday: weekdayFromRRule(wd),
			Ordinal: wd.N(),
		})
	}
	rule.FirstDayOfTheWeek = mo.Some(weekdayFromRRule(opt.Wkst))

	if err := rule.Validate(); err != nil {
		return Rule{}, err
	}
	return rule, nil
}

// NewFromComponent creates a scheduler for a VEVENT or VTODO. The component's
// EXDATE values are added to any exclusion dates given in opts. Floating
// times are read in the scheduler's time zone.
func NewFromComponent(comp *ical.Component, opts ...Option) (*Scheduler, error) {
	loc := applyOptions(opts).TimeZone
	if loc == nil {
		loc = time.Local
	}
	rule, exdates, err := RuleFromComponent(comp, loc)
	if err != nil {
		return nil, err
	}
	return New(rule, append(opts, WithTimeZone(loc), WithExclusionDates(exdates...))...)
}

// weekdayFromRRule converts rrule-go's Monday-based day index
func weekdayFromRRule(wd rrule.Weekday) time.Weekday {
	return time.Weekday((wd.Day() + 1) % 7)
}

// parseExceptionDates parses a possibly comma separated EXDATE property,
// honouring its TZID and VALUE parameters
func parseExceptionDates(prop ical.Prop, loc *time.Location) ([]time.Time, error) {
	var exdates []time.Time
	for _, value := range strings.Split(prop.Value, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		single := ical.Prop{Name: prop.Name, Params: prop.Params, Value: value}
		exdate, err := single.DateTime(loc)
		if err != nil {
			return nil, fmt.Errorf("failed to parse EXDATE '%s': %w", value, err)
		}
		exdates = append(exdates, exdate)
	}
	return exdates, nil
}
