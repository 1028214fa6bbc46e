package recurrence

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Mode selects between RFC 5545 behaviour and the deviations of Apple's EventKit
type Mode int

const (
	Standard Mode = iota
	// EventKit aligns weekly intervals on Sunday-based weeks whatever the
	// rule's first day of the week is.
	EventKit
)

func (m Mode) String() string {
	if m == EventKit {
		return "eventkit"
	}
	return "standard"
}

// ParseMode parses the String form of a Mode, ignoring case
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, nil
	case "eventkit":
		return EventKit, nil
	default:
		return Standard, fmt.Errorf("unknown mode %q", s)
	}
}

// Config holds the scheduler settings
type Config struct {
	// TimeZone used for all calendar computations. If nil, time.Local is used.
	TimeZone *time.Location

	// ExclusionDates are never delivered and do not count towards the rule's count
	ExclusionDates []time.Time

	// ExclusionGranularity controls how candidates are compared with ExclusionDates
	ExclusionGranularity ExclusionGranularity

	Mode Mode

	// Cache enables memoisation of Includes and NextDate results. Nil disables it.
	Cache *CacheConfig

	// Logger is the slog.Logger to use for logging
	// If nil, logging is disabled
	Logger *slog.Logger
}

// Option is a function that modifies Config
type Option func(*Config)

// WithTimeZone sets the time zone of the scheduler's calendar
func WithTimeZone(loc *time.Location) Option {
	return func(c *Config) {
		c.TimeZone = loc
	}
}

// WithExclusionDates adds exclusion dates (EXDATE)
func WithExclusionDates(dates ...time.Time) Option {
	return func(c *Config) {
		c.ExclusionDates = append(c.ExclusionDates, dates...)
	}
}

// WithExclusionGranularity sets how exclusion dates are matched
func WithExclusionGranularity(g ExclusionGranularity) Option {
	return func(c *Config) {
		c.ExclusionGranularity = g
	}
}

// WithMode sets the compatibility mode
func WithMode(mode Mode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithCache enables the query result cache
func WithCache(config CacheConfig) Option {
	return func(c *Config) {
		c.Cache = &config
	}
}

// WithLogger sets the logger for the scheduler
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func applyOptions(opts []Option) Config {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
