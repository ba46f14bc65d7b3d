package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Permanently delete a dream",
		Example: `
dreams delete 01HQ3K5Z7XG9R2N4P6T8V0W2Y4
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dreamIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				d := remove.Delete{ID: args[0], Store: j.store, Out: cmd.OutOrStdout()}
				return d.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every dream in the journal",
		Example: `
dreams clear
dreams clear --yes
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				c := remove.Clear{Yes: co.Yes, Asker: asker(), Store: j.store, Out: cmd.OutOrStdout()}
				return c.Do(cmd.Context())
			})
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
