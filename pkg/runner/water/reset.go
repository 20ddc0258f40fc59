package water

import (
	"context"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Reset struct {
	Persistence store.Persistence
}

func (n *Reset) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.ResetDailyWater(); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("Water intake reset for today")
	pp.Status(t)
	return nil
}
