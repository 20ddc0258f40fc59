package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/fasttrack/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Open the live countdown view",
		Example: `
fasttrack watch
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := persistence()
			if err != nil {
				return err
			}
			w := watch.Watch{Persistence: p}
			return w.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
