package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/record"
)

func addRecord(topLevel *cobra.Command) {
	ro := &options.RecordOptions{}

	cmd := &cobra.Command{
		Use:     "record [text]",
		Aliases: []string{"r", "new"},
		Short:   "Record a dream, answer follow-up questions and reconstruct it",
		Example: `
dreams record I was flying over a city at night
dreams record --audio file:///recordings/2024-01-02.m4a
dreams record --no-process the house had too many doors
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return withJournal(cmd.Context(), func(j *journal) error {
				r := record.Record{
					Text:       strings.Join(args, " "),
					AudioURI:   ro.AudioURI,
					NoProcess:  ro.NoProcess,
					Store:      j.store,
					Controller: j.controller,
					Asker:      asker(),
					Out:        cmd.OutOrStdout(),
				}
				return r.Do(cmd.Context())
			})
		},
	}

	options.AddRecordArgs(cmd, ro)

	topLevel.AddCommand(cmd)
}
