package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	co := &options.CalendarOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show which days of the month have a recorded dream",
		Example: `
dreams calendar
dreams calendar --month 2024-01
dreams calendar --year
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			on, err := co.GetMonth()
			if err != nil {
				return err
			}
			return withJournal(cmd.Context(), func(j *journal) error {
				c := calendar.Calendar{On: on, Year: co.Year, Store: j.store, Out: cmd.OutOrStdout()}
				return c.Do(cmd.Context())
			})
		},
	}

	options.AddCalendarArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
