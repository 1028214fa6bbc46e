package cli

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
)

const productID = "-//librrule//rrulectl//EN"

// writeInstances encodes one component per occurrence, each carrying the
// master's properties with its own DTSTART and RECURRENCE-ID
func writeInstances(w io.Writer, master *ical.Component, dates []time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	// instances of one series share a UID
	uid := uuid.NewString()
	if prop := master.Props.Get(ical.PropUID); prop != nil && prop.Value != "" {
		uid = prop.Value
	}
	duration := componentDuration(master)

	for _, date := range dates {
		inst := ical.NewComponent(master.Name)
		for name, props := range master.Props {
			switch name {
			case ical.PropRecurrenceRule, ical.PropRecurrenceDates, ical.PropExceptionDates,
				ical.PropDateTimeStart, ical.PropDateTimeEnd, ical.PropDuration, ical.PropUID:
				continue
			}
			inst.Props[name] = slices.Clone(props)
		}

		inst.Props.SetText(ical.PropUID, uid)
		inst.Props.SetDateTime(ical.PropDateTimeStart, date)
		inst.Props.SetDateTime(ical.PropRecurrenceID, date)
		if duration > 0 {
			inst.Props.SetDateTime(ical.PropDateTimeEnd, date.Add(duration))
		}
		if inst.Props.Get(ical.PropDateTimeStamp) == nil {
			inst.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
		}
		cal.Children = append(cal.Children, inst)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("failed to encode calendar: %w", err)
	}
	return nil
}

// componentDuration derives the length of each instance from DTEND or
// DURATION, zero if neither is usable
func componentDuration(comp *ical.Component) time.Duration {
	start, err := comp.Props.DateTime(ical.PropDateTimeStart, time.UTC)
	if err != nil || start.IsZero() {
		return 0
	}
	if end, err := comp.Props.DateTime(ical.PropDateTimeEnd, time.UTC); err == nil && !end.IsZero() {
		return end.Sub(start)
	}
	if prop := comp.Props.Get(ical.PropDuration); prop != nil {
		if d, err := prop.Duration(); err == nil {
			return d
		}
	}
	return 0
}
