package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	eo := &options.EditOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the title, narrative, mood or surreal level of a dream",
		Example: `
dreams edit 01HQ3K5Z7XG9R2N4P6T8V0W2Y4 --title "The Lighthouse"
dreams edit 01HQ3K5Z7XG9R2N4P6T8V0W2Y4 --mood scary --surreal high
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dreamIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := eo.Patch(cmd)
			if err != nil {
				return err
			}
			return withJournal(cmd.Context(), func(j *journal) error {
				e := edit.Edit{
					ID:    args[0],
					Patch: p,
					Store: j.store,
					Out:   cmd.OutOrStdout(),
				}
				return e.Do(cmd.Context())
			})
		},
	}

	options.AddEditArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
