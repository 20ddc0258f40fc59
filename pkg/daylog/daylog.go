package daylog

import (
	"github.com/google/uuid"

	"tableflip.dev/fasttrack/pkg/entry"
)

// Log is the derived per-day summary: the day's water total plus a snapshot
// of the fasting entry attached to that day. The authoritative fasting record
// lives in the history; the snapshot here must be refreshed whenever the
// referenced entry changes.
type Log struct {
	ID          string              `json:"id"`
	Date        entry.Day           `json:"date"`
	WaterIntake float64             `json:"waterIntake"` // litres
	Fasting     *entry.FastingEntry `json:"fastingEntry,omitempty"`
}

func (l *Log) Clone() *Log {
	if l == nil {
		return nil
	}
	cp := *l
	cp.Fasting = l.Fasting.Clone()
	return &cp
}

func newLog(d entry.Day) *Log {
	return &Log{
		ID:   uuid.NewString(),
		Date: d,
	}
}
