package daylog

import (
	"sort"

	"tableflip.dev/fasttrack/pkg/entry"
)

// Index is the day-keyed table of logs. One log per local calendar day,
// created lazily on the first event touching that day and updated in place
// afterwards. Not safe for concurrent use; the owning engine serializes
// access.
type Index struct {
	logs map[string]*Log
}

func NewIndex() *Index {
	return &Index{logs: make(map[string]*Log)}
}

// FromLogs builds an index from previously persisted logs. A later log wins
// when two share a day, so a malformed save can never produce duplicate keys.
func FromLogs(logs []*Log) *Index {
	ix := NewIndex()
	for _, l := range logs {
		if l == nil || l.Date.IsZero() {
			continue
		}
		ix.logs[l.Date.Key()] = l
	}
	return ix
}

// Get returns the log for the exact local day, if one exists.
func (ix *Index) Get(d entry.Day) (*Log, bool) {
	l, ok := ix.logs[d.Key()]
	return l, ok
}

// Len returns the number of days with a log.
func (ix *Index) Len() int { return len(ix.logs) }

func (ix *Index) upsert(d entry.Day) *Log {
	if l, ok := ix.logs[d.Key()]; ok {
		return l
	}
	l := newLog(d)
	ix.logs[d.Key()] = l
	return l
}

// SetWater records the day's water total, creating the log if needed.
func (ix *Index) SetWater(d entry.Day, litres float64) *Log {
	l := ix.upsert(d)
	l.WaterIntake = litres
	return l
}

// SetFasting attaches a fasting snapshot to the day, creating the log if
// needed. The snapshot is stored as given; callers pass clones.
func (ix *Index) SetFasting(d entry.Day, f *entry.FastingEntry) *Log {
	l := ix.upsert(d)
	l.Fasting = f
	return l
}

// ClearFasting drops the fasting snapshot from the day's log, if present.
// The log itself is never deleted.
func (ix *Index) ClearFasting(d entry.Day) {
	if l, ok := ix.logs[d.Key()]; ok {
		l.Fasting = nil
	}
}

// FindFasting returns the log whose snapshot references the given fasting
// entry id, regardless of which day it is attached to.
func (ix *Index) FindFasting(id string) (*Log, bool) {
	for _, l := range ix.logs {
		if l.Fasting != nil && l.Fasting.ID == id {
			return l, true
		}
	}
	return nil, false
}

// HasFasting reports whether a log exists for the day with a fasting snapshot.
func (ix *Index) HasFasting(d entry.Day) bool {
	l, ok := ix.logs[d.Key()]
	return ok && l.Fasting != nil
}

// HasWater reports whether a log exists for the day with a non-zero total.
func (ix *Index) HasWater(d entry.Day) bool {
	l, ok := ix.logs[d.Key()]
	return ok && l.WaterIntake > 0
}

// All returns the logs sorted by date ascending.
func (ix *Index) All() []*Log {
	out := make([]*Log, 0, len(ix.logs))
	for _, l := range ix.logs {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Rebuild reconstructs the whole index from raw events, the migration path
// used when no persisted index exists. Water entries are grouped by local day
// and summed. Each fasting entry is attached to its day (end day when closed,
// start day while open); when two fasts collide on a day, the later one in
// iteration order wins.
func Rebuild(water []*entry.WaterEntry, fasts []*entry.FastingEntry) *Index {
	ix := NewIndex()
	totals := make(map[string]float64)
	for _, w := range water {
		if w == nil {
			continue
		}
		totals[w.Day().Key()] += w.Amount
	}
	for key, sum := range totals {
		d, err := entry.ParseDay(key)
		if err != nil {
			continue
		}
		ix.SetWater(d, sum)
	}
	for _, f := range fasts {
		if f == nil {
			continue
		}
		ix.SetFasting(f.Day(), f.Clone())
	}
	return ix
}
