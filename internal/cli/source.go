package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/spf13/cobra"

	"github.com/cyp0633/librrule/recurrence"
)

var errNoRecurrence = errors.New("no recurring component found")

// session is the state shared by the subcommands: the recurring component of
// the input file and a scheduler built from it
type session struct {
	settings  settings
	component *ical.Component
	scheduler *recurrence.Scheduler
	start     time.Time
}

func openSession(cmd *cobra.Command, path string) (*session, error) {
	v, err := newViper(cmd)
	if err != nil {
		return nil, err
	}
	s, err := loadSettings(v)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), s.verbose)

	comp, err := readComponent(cmd.InOrStdin(), path)
	if err != nil {
		return nil, err
	}

	sched, err := recurrence.NewFromComponent(comp,
		recurrence.WithTimeZone(s.location),
		recurrence.WithMode(s.mode),
		recurrence.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("load recurrence from %s: %w", path, err)
	}

	start := s.from.OrElse(sched.Rule().Start.OrElse(time.Now().In(s.location)))
	logger.Debug("session opened",
		"file", path,
		"component", comp.Name,
		"frequency", sched.Rule().Frequency.String(),
		"start", start)

	return &session{settings: s, component: comp, scheduler: sched, start: start}, nil
}

// readComponent returns the first VEVENT, VTODO or VJOURNAL carrying an RRULE.
// A path of "-" reads from stdin.
func readComponent(stdin io.Reader, path string) (*ical.Component, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}

	for _, child := range cal.Children {
		switch child.Name {
		case ical.CompEvent, ical.CompToDo, ical.CompJournal:
			if child.Props.Get(ical.PropRecurrenceRule) != nil {
				return child, nil
			}
		}
	}
	return nil, fmt.Errorf("%s: %w", path, errNoRecurrence)
}
