package commands

import (
	"context"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/commands/options"
	"tableflip.dev/fasttrack/pkg/runner/cal"
)

func addCalendar(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show a month with fasting and water markers",
		Example: `
fasttrack calendar
fasttrack cal --on="2026-7-1"
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

			s := cal.Calendar{
				Persistence: p,
				On:          *on,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
