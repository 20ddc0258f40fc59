package tracker

import (
	"sort"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
)

func sortWater(entries []*entry.WaterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		lt := entries[i].Timestamp.Time
		rt := entries[j].Timestamp.Time
		if lt.Equal(rt) {
			return entries[i].ID < entries[j].ID
		}
		return lt.Before(rt)
	})
}

// QuickAddSizes are the common water amounts, in millilitres.
var QuickAddSizes = []float64{250, 500, 750}

// AddWater records a water addition in millilitres against the current day
// and refreshes today's log from ground truth. Crossing the daily target from
// below emits EventWaterTargetReached.
func (e *Engine) AddWater(amountMl float64) error {
	if amountMl <= 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	now := e.now()
	today := entry.DayOf(now)
	before := e.waterTotal(today) / e.dailyTarget

	litres := amountMl / 1000.0
	e.water = append(e.water, entry.NewWater(litres, now))

	total := e.waterTotal(today)
	e.dailyWater = total
	e.logs.SetWater(today, total)

	if before < 1.0 && total/e.dailyTarget >= 1.0 {
		e.emit(Event{Type: EventWaterTargetReached, Day: today})
	}

	e.save()
	return nil
}

// ResetDailyWater removes today's water entries and zeroes today's log.
// Other days' entries and logs are untouched.
func (e *Engine) ResetDailyWater() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	today := entry.DayOf(e.now())
	kept := e.water[:0]
	for _, w := range e.water {
		if w != nil && !w.Day().Equal(today) {
			kept = append(kept, w)
		}
	}
	e.water = kept
	e.dailyWater = 0
	e.logs.SetWater(today, 0)
	e.save()
	return nil
}

// SetHistoricalWaterIntake overwrites a past day's logged total with an
// absolute value. No backing water entry is synthesized, so a later rebuild
// from events will not reproduce the override; the raw event log keeps only
// what was actually recorded.
func (e *Engine) SetHistoricalWaterIntake(date time.Time, litres float64) error {
	if litres < 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	e.logs.SetWater(entry.DayOf(date), litres)
	e.save()
	return nil
}

// SetDailyTarget configures the daily water goal in litres.
func (e *Engine) SetDailyTarget(litres float64) error {
	if litres <= 0 {
		return ErrInvalidAmount
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	e.dailyTarget = litres
	e.save()
	return nil
}

// CurrentDayWaterTotal sums today's water entries. Always computed from the
// event store, never the cached running total, so it cannot drift.
func (e *Engine) CurrentDayWaterTotal() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waterTotal(entry.DayOf(e.now()))
}

// WaterTotalOn sums the water entries for an arbitrary local day.
func (e *Engine) WaterTotalOn(d entry.Day) float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waterTotal(d)
}

// WaterProgress returns today's intake over the daily target, clamped to
// [0, 1].
func (e *Engine) WaterProgress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return clamp(e.waterTotal(entry.DayOf(e.now())) / e.dailyTarget)
}

// DailyTarget returns the configured daily water goal in litres.
func (e *Engine) DailyTarget() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dailyTarget
}

// WaterEntries returns all water entries sorted by timestamp ascending.
func (e *Engine) WaterEntries() []*entry.WaterEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*entry.WaterEntry, 0, len(e.water))
	for _, w := range e.water {
		if w != nil {
			out = append(out, w.Clone())
		}
	}
	sortWater(out)
	return out
}
