package fast

import (
	"context"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/timeutil"
	"tableflip.dev/fasttrack/pkg/tracker"
)

type Stop struct {
	Persistence store.Persistence
}

func (n *Stop) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	elapsed, _ := t.Elapsed()

	if err := t.StopFasting(); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.Title("Fast complete: " + timeutil.Span(elapsed))
	if log, ok := t.DailyLog(entry.DayOf(time.Now())); ok {
		pp.DayLog(log, t.DailyTarget())
	}
	return nil
}
