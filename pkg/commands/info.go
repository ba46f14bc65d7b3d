package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the journal and where it is stored.",
		Example: `
dreams info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				i := info.Info{Config: j.cfg, Store: j.store, Out: cmd.OutOrStdout()}
				return i.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
