package commands

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/commands/options"
	"tableflip.dev/dreams/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	ido := &options.IDOptions{}
	oo := &options.OutputOptions{}
	var watch bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "archive"},
		Short:   "List dreams, most recent first",
		Example: `
dreams list
dreams list --mood scary --since 2w
dreams list --search lighthouse --json
dreams list --surreal high --from 2024-01-01 --to 2024-01-31
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if err := oo.Validate(); err != nil {
				return err
			}
			f, err := fo.Filter(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			err = withJournal(cmd.Context(), func(j *journal) error {
				l := list.List{
					Filter: f,
					Format: oo.Format(),
					ShowID: ido.ShowID,
					Watch:  watch,
					Store:  j.store,
					Out:    cmd.OutOrStdout(),
				}
				return l.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddShowIDArgs(cmd, ido)
	options.AddOutputArg(cmd, oo)
	cmd.Flags().BoolVarP(&watch, "watch", "w", false,
		"Keep running and reprint when the journal changes.")

	topLevel.AddCommand(cmd)
}
