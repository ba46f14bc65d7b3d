package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/runner/process"
)

func addProcess(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "process <id>",
		Short: "Ask follow-up questions and reconstruct an unprocessed dream",
		Example: `
dreams process 01HQ3K5Z7XG9R2N4P6T8V0W2Y4
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: dreamIDCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				p := process.Process{
					ID:         args[0],
					Controller: j.controller,
					Asker:      asker(),
					Out:        cmd.OutOrStdout(),
				}
				return p.Do(cmd.Context())
			})
		},
	}

	topLevel.AddCommand(cmd)
}
