package options

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutFull  = "2006-1-2 15:04"
	layoutClock = "15:04"
)

// RangeOptions carries an explicit start/end pair for editing or
// backfilling a fast.
type RangeOptions struct {
	StartString string
	EndString   string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	cmd.Flags().StringVar(&o.StartString, "start", "",
		`Start time, example: --start="2026-2-28 20:00" or --start="20:00".`)
	cmd.Flags().StringVar(&o.EndString, "end", "",
		`End time, example: --end="2026-2-29 12:00" or --end="12:00".`)
}

// GetRange resolves both times. Clock-only values are anchored to the
// given day.
func (o *RangeOptions) GetRange(on time.Time) (start, end time.Time, err error) {
	if o.StartString == "" || o.EndString == "" {
		return start, end, errors.New("both --start and --end are required")
	}
	if start, err = parseAt(o.StartString, on); err != nil {
		return start, end, err
	}
	if end, err = parseAt(o.EndString, on); err != nil {
		return start, end, err
	}
	return start, end, nil
}

func parseAt(s string, on time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(layoutFull, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(layoutClock, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	if on.IsZero() {
		on = time.Now()
	}
	return time.Date(on.Year(), on.Month(), on.Day(), t.Hour(), t.Minute(), 0, 0, time.Local), nil
}
