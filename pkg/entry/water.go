package entry

import (
	"time"

	"github.com/google/uuid"
)

// WaterEntry records a single water addition in litres. Entries are immutable
// once created; corrections are modeled as reset-and-replace.
type WaterEntry struct {
	ID        string    `json:"id"`
	Amount    float64   `json:"amount"` // litres
	Timestamp Timestamp `json:"timestamp"`
}

// NewWater creates an entry for the given amount in litres at the given time.
func NewWater(litres float64, at time.Time) *WaterEntry {
	return &WaterEntry{
		ID:        uuid.NewString(),
		Amount:    litres,
		Timestamp: At(at),
	}
}

// Day returns the local calendar day the entry counts toward.
func (w *WaterEntry) Day() Day {
	return w.Timestamp.Day()
}

func (w *WaterEntry) Clone() *WaterEntry {
	if w == nil {
		return nil
	}
	cp := *w
	return &cp
}
