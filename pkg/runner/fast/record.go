package fast

import (
	"context"
	"time"

	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

// Record backfills a completed fast onto a past day.
type Record struct {
	Persistence store.Persistence

	Date  time.Time
	Start time.Time
	End   time.Time
}

func (n *Record) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.AddHistoricalFast(n.Date, n.Start, n.End); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("Fasting history")
	pp.History(t.History())
	return nil
}
