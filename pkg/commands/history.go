package commands

import (
	"context"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/runner/history"
)

func addHistory(topLevel *cobra.Command) {
	showIDs := false

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded fasts",
		Example: `
fasttrack history
fasttrack history --ids
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			p, err := persistence()
			if err != nil {
				return err
			}

			s := history.History{
				Persistence: p,
				ShowID:      showIDs,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show fast ids for use with fast edit.")
	base.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
