package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dreams",
		Short: base.Wrap80("A dream journal on the command line. Record a dream, answer a few questions about it, and get back a titled narrative."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRecord(topLevel)
	addProcess(topLevel)
	addList(topLevel)
	addBrowse(topLevel)
	addShow(topLevel)
	addShare(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addClear(topLevel)
	addCalendar(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
