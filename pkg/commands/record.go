package commands

import (
	"context"
	"errors"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/commands/options"
	"tableflip.dev/fasttrack/pkg/runner/fast"
)

func addRecord(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	ro := &options.RangeOptions{}

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Backfill a completed fast onto a past day",
		Example: `
fasttrack fast record --on="8/29" --start="20:00" --end="2026-8-30 12:00"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if oo.OnString == "" {
				return errors.New("requires --on")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			on, err := oo.GetOn()
			if err != nil {
				return err
			}

			start, end, err := ro.GetRange(*on)
			if err != nil {
				return err
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := fast.Record{
				Persistence: p,
				Date:        *on,
				Start:       start,
				End:         end,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddRangeArgs(cmd, ro)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
