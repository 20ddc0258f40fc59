package fast

import (
	"context"
	"time"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

// Edit rewrites the start and end of a recorded fast.
type Edit struct {
	Persistence store.Persistence

	ID    string
	Start time.Time
	End   time.Time
}

func (n *Edit) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.UpdateHistoricalFast(n.ID, n.Start, n.End); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	pp.Title("Fasting history")
	pp.History(t.History())
	return nil
}
