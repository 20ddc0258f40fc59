package entry

import (
	"time"

	"github.com/google/uuid"
)

// FastingEntry records one fasting session. An entry with no end time is the
// active fast; at most one such entry exists in the history at a time.
type FastingEntry struct {
	ID                 string     `json:"id"`
	StartTime          Timestamp  `json:"startTime"`
	EndTime            *Timestamp `json:"endTime,omitempty"`
	FastingWindowHours int        `json:"fastingWindowHours"`
}

// NewFasting opens a new fasting session starting at the given time.
func NewFasting(start time.Time, windowHours int) *FastingEntry {
	return &FastingEntry{
		ID:                 uuid.NewString(),
		StartTime:          At(start),
		FastingWindowHours: windowHours,
	}
}

// Open reports whether the fast is still running.
func (f *FastingEntry) Open() bool {
	return f.EndTime == nil
}

// Close records the end of the fast. Closing an already closed entry
// overwrites the previous end time.
func (f *FastingEntry) Close(end time.Time) {
	ts := At(end)
	f.EndTime = &ts
}

// Duration returns the length of a closed fast, or zero while it is open.
func (f *FastingEntry) Duration() time.Duration {
	if f.Open() {
		return 0
	}
	return f.EndTime.Sub(f.StartTime.Time)
}

// Day returns the local day the entry is attached to: the day the fast ended
// when closed, else the day it started.
func (f *FastingEntry) Day() Day {
	if f.Open() {
		return f.StartTime.Day()
	}
	return f.EndTime.Day()
}

func (f *FastingEntry) Clone() *FastingEntry {
	if f == nil {
		return nil
	}
	cp := *f
	if f.EndTime != nil {
		end := *f.EndTime
		cp.EndTime = &end
	}
	return &cp
}
