package day

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/printers"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
)

// Day shows the daily log for a single date.
type Day struct {
	Persistence store.Persistence

	On      time.Time
	Entries bool
}

func (n *Day) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	d := entry.DayOf(n.On)
	pp := printers.PrettyPrint{}

	log, ok := t.DailyLog(d)
	if !ok {
		fmt.Printf("nothing recorded on %s\n", d)
		return nil
	}

	pp.DayLog(log, t.DailyTarget())
	if n.Entries {
		pp.NewLine()
		pp.Water(t.WaterEntries(), d)
	}
	return nil
}
