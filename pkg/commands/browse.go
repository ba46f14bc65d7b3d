package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/prompt"
	"tableflip.dev/dreams/pkg/runner/browse"
)

func addBrowse(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the journal full screen, by mood or search",
		Example: `
dreams browse
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if _, ok := asker().(prompt.Unattended); ok {
				return errors.New("browse needs an interactive terminal, try dreams list")
			}
			return withJournal(cmd.Context(), func(j *journal) error {
				b := browse.Browse{Store: j.store}
				return b.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
