package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/runner/fast"
)

func addFast(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "fast",
		Short: "Manage the fasting session",
		Example: `
fasttrack fast start
fasttrack fast stop
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addFastStart(cmd)
	addFastStop(cmd)
	addWindow(cmd)
	addEdit(cmd)
	addRecord(cmd)

	topLevel.AddCommand(cmd)
}

func addFastStart(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a fast now",
		Example: `
fasttrack fast start
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}

			s := fast.Start{Persistence: p}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addFastStop(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "End the running fast",
		Example: `
fasttrack fast stop
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}

			s := fast.Stop{Persistence: p}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
