package commands

import (
	"context"
	"errors"
	"time"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/commands/options"
	"tableflip.dev/fasttrack/pkg/runner/fast"
)

func addEdit(topLevel *cobra.Command) {
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rewrite the start and end of a recorded fast",
		Example: `
fasttrack fast edit 4be1cf4f --start="2026-8-30 20:00" --end="2026-8-31 12:00"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a fast id, see: fasttrack history --ids")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			start, end, err := ro.GetRange(time.Now())
			if err != nil {
				return err
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := fast.Edit{
				Persistence: p,
				ID:          args[0],
				Start:       start,
				End:         end,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddRangeArgs(cmd, ro)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
