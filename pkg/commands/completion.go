package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/dreams/pkg/config"
	"tableflip.dev/dreams/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(dreams completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(dreams completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// dreamIDCompletions offers stored dream ids with the title as description.
// It reads storage directly so completion never logs or writes.
func dreamIDCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	dreams, err := p.Load(context.Background())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ids := make([]string, 0, len(dreams))
	for _, d := range dreams {
		if !strings.HasPrefix(d.ID, toComplete) {
			continue
		}
		title := d.Title
		if title == "" {
			title = "unprocessed"
		}
		ids = append(ids, d.ID+"\t"+title)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
