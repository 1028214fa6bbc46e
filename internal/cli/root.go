// Package cli implements the rrulectl command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/cyp0633/librrule/recurrence"
)

// NewRootCommand builds the rrulectl command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "rrulectl",
		Short: "Expand and query iCalendar recurrence rules",
		Long: "rrulectl reads the first recurring VEVENT, VTODO or VJOURNAL of an .ics file " +
			"and prints its occurrences. Every flag can also be set through an environment " +
			"variable prefixed with " + envPrefix + "_, e.g. " + envPrefix + "_TZ.",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.String("tz", "Local", "Time zone for calendar computations")
	flags.String("mode", recurrence.Standard.String(), "Compatibility mode: standard or eventkit")
	flags.String("from", "", "Start of the enumeration window, defaults to DTSTART")
	flags.BoolP("verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(newExpandCommand(), newNextCommand(), newIncludesCommand())
	return root
}
