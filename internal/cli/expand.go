package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var errUnbounded = errors.New("rule never ends; set --limit or --until")

func newExpandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand FILE",
		Short: "Print the occurrences of a recurring component",
		Args:  cobra.ExactArgs(1),
		RunE:  runExpand,
	}
	cmd.Flags().Int("limit", 10, "Maximum number of occurrences, 0 for no limit")
	cmd.Flags().String("until", "", "Last date to print (inclusive)")
	cmd.Flags().String("format", "text", "Output format: text or ics")
	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}
	s := sess.settings

	switch s.format {
	case "text", "ics":
	default:
		return fmt.Errorf("unknown format %q", s.format)
	}

	until, hasUntil := s.until.Get()
	if s.limit == 0 && !hasUntil && sess.scheduler.Rule().End.IsUnbounded() {
		return errUnbounded
	}

	var dates []time.Time
	for date := range sess.scheduler.Occurrences(sess.start) {
		if hasUntil && date.After(until) {
			break
		}
		dates = append(dates, date)
		if s.limit > 0 && len(dates) >= s.limit {
			break
		}
	}

	out := cmd.OutOrStdout()
	if s.format == "ics" {
		return writeInstances(out, sess.component, dates)
	}
	for _, date := range dates {
		if _, err := fmt.Fprintln(out, date.In(s.location).Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
