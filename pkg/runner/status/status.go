package status

import (
	"context"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Status struct {
	Persistence store.Persistence
}

func (n *Status) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Status(t)
	if log, ok := t.DailyLog(entry.DayOf(time.Now())); ok {
		pp.NewLine()
		pp.DayLog(log, t.DailyTarget())
	}
	return nil
}
