package entry

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayFormat is the ISO-8601 layout used to serialize day keys.
const DayFormat = "2006-01-02"

// Day is a calendar day in the local time zone, the key every daily log is
// indexed by. The zero Day is not a valid key.
type Day struct {
	t time.Time
}

// DayOf truncates an instant to the start of its local calendar day.
func DayOf(t time.Time) Day {
	l := t.Local()
	return Day{time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.Local)}
}

// NewDay returns the day for the given local year, month, and day of month.
func NewDay(year int, month time.Month, day int) Day {
	return Day{time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// ParseDay parses an ISO-8601 date like "2025-08-31" as a local day.
func ParseDay(s string) (Day, error) {
	t, err := time.ParseInLocation(DayFormat, s, time.Local)
	if err != nil {
		return Day{}, fmt.Errorf("invalid date %q, want format %q: %w", s, DayFormat, err)
	}
	return Day{t}, nil
}

// Time returns the instant at the start of the day (local midnight).
func (d Day) Time() time.Time { return d.t }

func (d Day) IsZero() bool { return d.t.IsZero() }

func (d Day) Equal(o Day) bool { return d.t.Equal(o.t) }

func (d Day) Before(o Day) bool { return d.t.Before(o.t) }

// Add returns the day shifted by the given number of days.
func (d Day) Add(days int) Day { return DayOf(d.t.AddDate(0, 0, days)) }

// Contains reports whether the instant falls inside this local day.
func (d Day) Contains(t time.Time) bool { return DayOf(t).Equal(d) }

// Key returns the canonical string form used as an index key.
func (d Day) Key() string { return d.t.Format(DayFormat) }

func (d Day) String() string { return d.Key() }

// Format renders the day with an arbitrary time layout.
func (d Day) Format(layout string) string { return d.t.Format(layout) }

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Key())
}

func (d *Day) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDay(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var _ json.Marshaler = (*Day)(nil)
var _ json.Unmarshaler = (*Day)(nil)
