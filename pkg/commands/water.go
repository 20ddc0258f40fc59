package commands

import (
	"context"
	"errors"
	"strconv"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/commands/options"
	"tableflip.dev/fasttrack/pkg/runner/water"
	"tableflip.dev/fasttrack/pkg/tracker"
)

func addWater(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "water",
		Short: "Track water intake",
		Example: `
fasttrack water add 330
fasttrack water reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addWaterAdd(cmd)
	addWaterReset(cmd)
	addWaterSet(cmd)
	addWaterTarget(cmd)

	topLevel.AddCommand(cmd)
}

func addWaterAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add [ml]",
		Short: "Add a drink in millilitres",
		Example: `
fasttrack water add          (default glass, 250 ml)
fasttrack water add 500
fasttrack water add large    (750 ml)
`,
		ValidArgs: []string{"small", "medium", "large"},
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) > 1 {
				return errors.New("requires at most one amount")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			amount, err := parseAmount(args)
			if err != nil {
				return err
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := water.Add{
				Persistence: p,
				AmountMl:    amount,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func parseAmount(args []string) (float64, error) {
	if len(args) == 0 {
		return tracker.QuickAddSizes[0], nil
	}
	switch args[0] {
	case "small":
		return tracker.QuickAddSizes[0], nil
	case "medium":
		return tracker.QuickAddSizes[1], nil
	case "large":
		return tracker.QuickAddSizes[2], nil
	}
	return strconv.ParseFloat(args[0], 64)
}

func addWaterReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Zero out today's water intake",
		Example: `
fasttrack water reset
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}

			s := water.Reset{Persistence: p}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWaterSet(topLevel *cobra.Command) {
	oo := &options.OnOptions{}

	cmd := &cobra.Command{
		Use:   "set <litres>",
		Short: "Overwrite a past day's water total",
		Example: `
fasttrack water set 1.8 --on="8/29"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a total in litres")
			}
			// Overrides are for past days only. Today's total is
			// recomputed from the raw entries on the next command,
			// which would silently discard an override of today.
			if oo.OnString == "" {
				return errors.New(`requires --on, example: fasttrack water set 1.8 --on="8/29"`)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			litres, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			on, err := oo.GetOn()
			if err != nil {
				return err
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := water.Override{
				Persistence: p,
				On:          *on,
				Litres:      litres,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWaterTarget(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "target <litres>",
		Short: "Set the daily water target",
		Example: `
fasttrack water target 2.5
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) != 1 {
				return errors.New("requires a target in litres")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			litres, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return err
			}

			p, err := persistence()
			if err != nil {
				return err
			}

			s := water.Target{
				Persistence: p,
				Litres:      litres,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
