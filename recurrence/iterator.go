package recurrence

import (
	"log/slog"
	"slices"
	"time"

	"github.com/samber/mo"
)

// MaxConsecutiveMisses is the number of consecutive candidate periods (days
// for daily rules, weeks, months or years otherwise) without an occurrence
// after which enumeration ends. It keeps rules whose filters can never match,
// such as the 31st of February, from running forever.
const MaxConsecutiveMisses = 1000

// Control tells the enumeration whether to keep going after a delivered date
type Control int

const (
	Continue Control = iota
	Stop
)

// Consumer receives each occurrence in increasing order
type Consumer func(date time.Time) Control

// iterator enumerates the occurrences of one frequency
type iterator interface {
	enumerate(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, yield Consumer)
}

// stepper walks the candidate periods of a frequency. Positions are day
// offsets from the seed date of the enumeration.
type stepper interface {
	// first returns the offset of the period containing the seed
	first() (int, bool)
	// candidates appends the offsets of the candidate days of the period
	// starting at offset, in increasing order
	candidates(offset int, dst []int) ([]int, bool)
	// next returns the offset of the next period to visit
	next(offset int) (int, bool)
}

// iteratorBase holds what every frequency iterator needs besides the rule
type iteratorBase struct {
	excluded exclusionSet
	logger   *slog.Logger
}

type enumeration struct {
	rule        *Rule
	cal         Calendar
	seed        time.Time
	hasAnchor   bool
	windowStart time.Time
	match       *matcher
	logger      *slog.Logger
}

func (b *iteratorBase) begin(rule *Rule, anchor mo.Option[time.Time], windowStart time.Time, cal Calendar, scope weekdayScope) *enumeration {
	seed, hasAnchor := anchor.Get()
	if !hasAnchor {
		seed = windowStart
	}
	return &enumeration{
		rule:        rule,
		cal:         cal,
		seed:        seed,
		hasAnchor:   hasAnchor,
		windowStart: windowStart,
		match:       newMatcher(rule, anchor, b.excluded, cal, scope),
		logger:      b.logger,
	}
}

// run drives the enumeration loop shared by all frequencies
func (e *enumeration) run(st stepper, yield Consumer) {
	endDate, hasEnd := e.rule.End.Date()
	limit, hasCount := e.rule.End.Count()

	offset, ok := st.first()
	if !ok {
		e.abort("calendar arithmetic failed")
		return
	}

	var buf []int
	delivered, misses := 0, 0
	firstPeriod := true
	for {
		if hasCount && delivered >= limit {
			return
		}
		if hasEnd {
			periodStart, ok := e.cal.AddDays(e.seed, offset)
			if !ok {
				e.abort("calendar arithmetic failed")
				return
			}
			if periodStart.After(endDate) {
				return
			}
		}

		buf, ok = st.candidates(offset, buf[:0])
		if !ok {
			e.abort("calendar arithmetic failed")
			return
		}
		if firstPeriod {
			buf = e.clipFirstPeriod(buf)
			firstPeriod = false
		}

		matched := false
		for _, off := range buf {
			date, ok := e.cal.AddDays(e.seed, off)
			if !ok {
				e.abort("calendar arithmetic failed")
				return
			}
			if hasEnd && date.After(endDate) {
				return
			}
			if !e.match.matches(date) {
				continue
			}
			matched = true
			if date.Before(e.windowStart) {
				continue
			}

			delivered++
			if yield(date) == Stop {
				return
			}
			if hasCount && delivered >= limit {
				return
			}
		}

		if matched {
			misses = 0
		} else {
			misses++
			if misses >= MaxConsecutiveMisses {
				e.abort("no occurrence within retry budget")
				return
			}
		}

		offset, ok = st.next(offset)
		if !ok {
			e.abort("calendar arithmetic failed")
			return
		}
	}
}

// clipFirstPeriod drops candidates before the seed and makes the anchor a
// candidate whether or not the period expansion produced it
func (e *enumeration) clipFirstPeriod(offsets []int) []int {
	i, _ := slices.BinarySearch(offsets, 0)
	offsets = offsets[i:]
	if e.hasAnchor && (len(offsets) == 0 || offsets[0] != 0) {
		offsets = slices.Insert(offsets, 0, 0)
	}
	return offsets
}

func (e *enumeration) abort(reason string) {
	e.logger.Debug("recurrence enumeration ended early",
		"reason", reason,
		"frequency", e.rule.Frequency.String(),
		"seed", e.seed)
}
