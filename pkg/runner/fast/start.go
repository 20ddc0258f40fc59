package fast

import (
	"context"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Start struct {
	Persistence store.Persistence
}

func (n *Start) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.StartFasting(); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Status(t)
	return nil
}
