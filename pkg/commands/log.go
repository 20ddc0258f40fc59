package commands

import (
	"context"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/commands/options"
	"tableflip.dev/fasttrack/pkg/runner/day"
)

func addLog(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	entries := false

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the daily log for a day",
		Example: `
fasttrack log
fasttrack log --on="8/29" --entries
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			if on == nil {
				now := time.Now()
				on = &now
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := day.Day{
				Persistence: p,
				On:          *on,
				Entries:     entries,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&entries, "entries", false, "List the individual drinks for the day.")
	options.AddOnArgs(cmd, oo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
