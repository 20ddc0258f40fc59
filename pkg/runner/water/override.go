package water

import (
	"context"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

// Override pins a past day's water total without touching the event log.
type Override struct {
	Persistence store.Persistence

	On     time.Time
	Litres float64
}

func (n *Override) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	if err := t.SetHistoricalWaterIntake(n.On, n.Litres); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	if log, ok := t.DailyLog(entry.DayOf(n.On)); ok {
		pp.DayLog(log, t.DailyTarget())
	}
	return nil
}
