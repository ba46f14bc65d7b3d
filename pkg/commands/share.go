package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/runner/share"
)

func addShare(topLevel *cobra.Command) {
	var copyText bool

	cmd := &cobra.Command{
		Use:   "share <id>",
		Short: "Print a dream as plain text to share",
		Example: `
dreams share 01HQ3K5Z7XG9R2N4P6T8V0W2Y4
dreams share 01HQ3K5Z7XG9R2N4P6T8V0W2Y4 --copy
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dreamIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				s := share.Share{
					ID:    args[0],
					Copy:  copyText,
					Store: j.store,
					Out:   cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
		},
	}

	cmd.Flags().BoolVar(&copyText, "copy", false, "Also copy the text to the clipboard.")

	topLevel.AddCommand(cmd)
}
