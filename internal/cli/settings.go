package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cyp0633/librrule/recurrence"
)

// envPrefix namespaces the environment variables that override flags,
// e.g. RRULECTL_TZ or RRULECTL_LIMIT
const envPrefix = "RRULECTL"

type settings struct {
	location *time.Location
	mode     recurrence.Mode
	from     mo.Option[time.Time]
	until    mo.Option[time.Time]
	limit    int
	exact    bool
	format   string
	verbose  bool
}

// newViper layers the environment under the command's flags. An explicitly
// set flag wins over the environment, which wins over the flag default.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}

func loadSettings(v *viper.Viper) (settings, error) {
	s := settings{
		limit:   v.GetInt("limit"),
		exact:   v.GetBool("exact"),
		format:  strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		verbose: v.GetBool("verbose"),
	}
	if s.limit < 0 {
		return settings{}, fmt.Errorf("limit must not be negative, got %d", s.limit)
	}

	loc, err := time.LoadLocation(strings.TrimSpace(v.GetString("tz")))
	if err != nil {
		return settings{}, fmt.Errorf("load time zone: %w", err)
	}
	s.location = loc

	if s.mode, err = recurrence.ParseMode(v.GetString("mode")); err != nil {
		return settings{}, err
	}
	if s.from, err = parseOptionalTime(v.GetString("from"), loc); err != nil {
		return settings{}, fmt.Errorf("parse --from: %w", err)
	}
	if s.until, err = parseOptionalTime(v.GetString("until"), loc); err != nil {
		return settings{}, fmt.Errorf("parse --until: %w", err)
	}
	return s, nil
}

// parseTime accepts RFC 3339 timestamps, local date-times and plain dates.
// Values without an offset are read in loc.
func parseTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, want RFC 3339 or YYYY-MM-DD", value)
}

func parseOptionalTime(value string, loc *time.Location) (mo.Option[time.Time], error) {
	if strings.TrimSpace(value) == "" {
		return mo.None[time.Time](), nil
	}
	t, err := parseTime(value, loc)
	if err != nil {
		return mo.None[time.Time](), err
	}
	return mo.Some(t), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
