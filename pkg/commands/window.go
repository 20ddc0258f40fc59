package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/runner/fast"
)

func addWindow(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Set the fasting window",
		Example: `
fasttrack fast window 16:8
fasttrack fast window omad
`,
		ValidArgs: []string{"16:8", "18:6", "20:4", "omad"},
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New(`requires a window like "16:8"`)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}

			s := fast.Window{
				Persistence: p,
				Split:       args[0],
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
