package water

import (
	"context"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Add struct {
	Persistence store.Persistence

	// AmountMl is the drink size in millilitres.
	AmountMl float64
}

func (n *Add) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.AddWater(n.AmountMl); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Status(t)
	return nil
}
