package store

import (
	"tableflip.dev/fasttrack/pkg/daylog"
	"tableflip.dev/fasttrack/pkg/entry"
)

// Persisted key names. Values are JSON blobs, primitives included.
const (
	keyFastingWindowHours = "fastingWindowHours"
	keyEatingWindowHours  = "eatingWindowHours"
	keyFastingStartTime   = "fastingStartTime"
	keyIsFasting          = "isFasting"
	keyDailyWaterIntake   = "dailyWaterIntake"
	keyDailyTarget        = "dailyTarget"
	keyWaterEntries       = "waterEntries"
	keyFastingHistory     = "fastingHistory"
	keyDailyLogs          = "dailyLogs"
	keyLastWaterReset     = "lastWaterResetDate"
)

// Defaults applied when a key has never been written.
const (
	DefaultFastingWindowHours = 16
	DefaultEatingWindowHours  = 8
	DefaultDailyTarget        = 2.0 // litres
)

// State is the full persisted snapshot of the tracker. DailyWaterIntake is a
// cached figure only; the engine always recomputes it from entries on load.
type State struct {
	FastingWindowHours int
	EatingWindowHours  int
	FastingStartTime   *entry.Timestamp // absent when idle
	IsFasting          bool
	DailyWaterIntake   float64
	DailyTarget        float64
	WaterEntries       []*entry.WaterEntry
	FastingHistory     []*entry.FastingEntry
	DailyLogs          []*daylog.Log
	HasDailyLogs       bool // false means the index was never saved and must be rebuilt
	LastWaterReset     *entry.Timestamp
}

// NewState returns a state populated with defaults.
func NewState() *State {
	return &State{
		FastingWindowHours: DefaultFastingWindowHours,
		EatingWindowHours:  DefaultEatingWindowHours,
		DailyTarget:        DefaultDailyTarget,
	}
}
