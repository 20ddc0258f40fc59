package cal

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/store"
	"tableflip.dev/fasttrack/pkg/tracker"
	"tableflip.dev/fasttrack/pkg/ui/calendar"
)

// Calendar renders a month grid marking fasting and water days.
type Calendar struct {
	Persistence store.Persistence

	On time.Time
}

func (n *Calendar) Do(ctx context.Context) error {
	t, err := tracker.New(ctx, n.Persistence)
	if err != nil {
		return err
	}

	month := n.On
	if month.IsZero() {
		month = time.Now()
	}
	today := entry.DayOf(time.Now())

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	var days []calendar.Day
	for d := entry.DayOf(first); !d.Time().After(last); d = d.Add(1) {
		days = append(days, calendar.Day{
			Day:        d.Time().Day(),
			HasFasting: t.HasFasting(d),
			HasWater:   t.HasWater(d),
			IsToday:    d.Equal(today),
		})
	}

	fmt.Println(month.Format("January 2006"))
	fmt.Println(calendar.Render(first, days, calendar.DefaultOptions()))
	return nil
}
