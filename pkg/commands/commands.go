package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/fasttrack/pkg/store"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "fasttrack",
		Short: base.Wrap80("Intermittent fasting and water tracking on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addFast(topLevel)
	addWater(topLevel)
	addStatus(topLevel)
	addLog(topLevel)
	addCalendar(topLevel)
	addHistory(topLevel)
	addWatch(topLevel)
	addVersion(topLevel)
}

func persistence() (store.Persistence, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return store.Load(cfg)
}
