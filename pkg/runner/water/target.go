package water

import (
	"context"
	"fmt"

	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Target struct {
	Persistence store.Persistence

	Litres float64
}

func (n *Target) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.SetDailyTarget(n.Litres); err != nil {
		return err
	}

	fmt.Printf("daily water target set to %.2f L\n", n.Litres)
	return nil
}
