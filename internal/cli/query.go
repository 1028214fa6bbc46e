package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var errNoNextDate = errors.New("no further occurrence")

func newNextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next FILE [AFTER]",
		Short: "Print the first occurrence after a date (now by default)",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runNext,
	}
}

func runNext(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	after := time.Now()
	if len(args) == 2 {
		if after, err = parseTime(args[1], sess.settings.location); err != nil {
			return err
		}
	}

	next, ok := sess.scheduler.NextDate(after, sess.start).Get()
	if !ok {
		return errNoNextDate
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), next.In(sess.settings.location).Format(time.RFC3339))
	return err
}

func newIncludesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "includes FILE DATE",
		Short: "Report whether the rule has an occurrence on a date",
		Args:  cobra.ExactArgs(2),
		RunE:  runIncludes,
	}
	cmd.Flags().Bool("exact", false, "Require the exact instant instead of the same day")
	return cmd
}

func runIncludes(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	date, err := parseTime(args[1], sess.settings.location)
	if err != nil {
		return err
	}

	found := sess.scheduler.Includes(date, sess.start, sess.settings.exact)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatBool(found))
	return err
}
