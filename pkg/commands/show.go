package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var imagePrompt bool

	cmd := &cobra.Command{
		Use:     "show <id>",
		Aliases: []string{"get"},
		Short:   "Show one dream in full",
		Example: `
dreams show 01HQ3K5Z7XG9R2N4P6T8V0W2Y4
dreams show 01HQ3K5Z7XG9R2N4P6T8V0W2Y4 --image-prompt
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dreamIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := oo.Validate(); err != nil {
				return err
			}
			err := withJournal(cmd.Context(), func(j *journal) error {
				s := show.Show{
					ID:          args[0],
					ImagePrompt: imagePrompt,
					Format:      oo.Format(),
					Store:       j.store,
					Controller:  j.controller,
					Out:         cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVar(&imagePrompt, "image-prompt", false,
		"Also describe the dream as an 8-bit pixel art scene.")

	topLevel.AddCommand(cmd)
}
