package tracker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/fasttrack/pkg/daylog"
	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/store"
)

var (
	ErrAlreadyFasting = errors.New("tracker: a fast is already running")
	ErrNotFasting     = errors.New("tracker: no fast is running")
	ErrNotFound       = errors.New("tracker: fasting entry not found")
	ErrInvalidWindow  = errors.New("tracker: fasting and eating hours must be positive and sum to 24")
	ErrInvalidAmount  = errors.New("tracker: amount must be positive")
	ErrInvalidRange   = errors.New("tracker: end time must be after start time")
)

// Engine owns all mutable tracker state: the raw event stores, the daily log
// index, the fasting session, and the rollover marker. Commands are atomic
// with respect to each other; a single mutex guards both commands and the
// read-only queries the 1 Hz display tick drives, so a tick can never observe
// a half-applied mutation.
type Engine struct {
	mu  sync.Mutex
	p   store.Persistence
	log zerolog.Logger
	now func() time.Time

	fastingWindowHours int
	eatingWindowHours  int
	dailyTarget        float64 // litres

	isFasting    bool
	fastingStart time.Time // zero while idle

	dailyWater float64 // cached running total for today; display only
	lastReset  time.Time

	water   []*entry.WaterEntry
	history []*entry.FastingEntry
	logs    *daylog.Index

	events chan Event
}

type Option func(*Engine)

// WithClock overrides the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger used for swallowed persistence errors and
// rollover diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New loads persisted state and returns a ready engine. When no daily log
// index was ever saved, the index is rebuilt from the raw water and fasting
// events (the migration path).
func New(ctx context.Context, p store.Persistence, opts ...Option) (*Engine, error) {
	if p == nil {
		return nil, errors.New("tracker: no persistence configured")
	}

	e := &Engine{
		p:      p,
		log:    zerolog.Nop(),
		now:    time.Now,
		events: make(chan Event, 16),
	}
	for _, opt := range opts {
		opt(e)
	}

	s, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}

	e.fastingWindowHours = s.FastingWindowHours
	e.eatingWindowHours = s.EatingWindowHours
	e.dailyTarget = s.DailyTarget
	e.water = s.WaterEntries
	e.history = s.FastingHistory

	// Track whether load changed anything worth writing back. A load of
	// already-consistent state must not touch the store, or a watcher
	// reloading on store-change events would feed itself forever.
	dirty := false

	if s.HasDailyLogs {
		e.logs = daylog.FromLogs(s.DailyLogs)
	} else {
		e.logs = daylog.Rebuild(e.water, e.history)
		e.log.Info().Int("days", e.logs.Len()).Msg("rebuilt daily log index from events")
		dirty = true
	}

	// The open history entry is authoritative for the live session; the
	// persisted flags only matter when the history was lost.
	if open := e.openFast(); open != nil {
		e.isFasting = true
		e.fastingStart = open.StartTime.Time
	} else if s.IsFasting && s.FastingStartTime != nil {
		f := entry.NewFasting(s.FastingStartTime.Time, e.fastingWindowHours)
		e.history = append(e.history, f)
		e.isFasting = true
		e.fastingStart = f.StartTime.Time
		e.logs.SetFasting(f.Day(), f.Clone())
		dirty = true
	}

	if s.LastWaterReset != nil {
		e.lastReset = s.LastWaterReset.Time
	} else {
		e.lastReset = e.now()
		dirty = true
	}

	if e.checkRollover() {
		dirty = true
	}
	if dirty {
		e.save()
	}
	return e, nil
}

// Events exposes engine notifications (water target reached, day rollover).
// The channel is buffered and sends never block; a slow consumer loses
// notifications rather than stalling commands.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// openFast returns the single open entry, if any.
func (e *Engine) openFast() *entry.FastingEntry {
	for _, f := range e.history {
		if f != nil && f.Open() {
			return f
		}
	}
	return nil
}

func (e *Engine) findFast(id string) *entry.FastingEntry {
	for _, f := range e.history {
		if f != nil && f.ID == id {
			return f
		}
	}
	return nil
}

// waterTotal sums the entries falling on the given local day. This is the
// single source of truth for any day's intake; the cached running total is
// never consulted.
func (e *Engine) waterTotal(d entry.Day) float64 {
	var sum float64
	for _, w := range e.water {
		if w != nil && w.Day().Equal(d) {
			sum += w.Amount
		}
	}
	return sum
}

// checkRollover is the lazy day-boundary check run at the top of every
// command and on load. Crossing a boundary finalizes the marker's day from
// ground truth and restarts today's running total; on the same day it just
// recomputes the running total, which is idempotent. Reports whether a
// boundary was crossed.
func (e *Engine) checkRollover() bool {
	now := e.now()
	today := entry.DayOf(now)
	last := entry.DayOf(e.lastReset)

	if !last.Equal(today) {
		e.logs.SetWater(last, e.waterTotal(last))
		e.lastReset = now
		e.dailyWater = e.waterTotal(today)
		e.log.Debug().Str("finalized", last.String()).Str("today", today.String()).Msg("day rollover")
		e.emit(Event{Type: EventDayRolledOver, Day: today})
		return true
	}
	e.dailyWater = e.waterTotal(today)
	return false
}

// save persists the full state best-effort. A failed write is logged and
// swallowed; in-memory state stays authoritative until the next save.
func (e *Engine) save() {
	logs := e.logs.All()
	reset := entry.At(e.lastReset)
	s := &store.State{
		FastingWindowHours: e.fastingWindowHours,
		EatingWindowHours:  e.eatingWindowHours,
		IsFasting:          e.isFasting,
		DailyWaterIntake:   e.dailyWater,
		DailyTarget:        e.dailyTarget,
		WaterEntries:       e.water,
		FastingHistory:     e.history,
		DailyLogs:          logs,
		HasDailyLogs:       true,
		LastWaterReset:     &reset,
	}
	if e.isFasting {
		start := entry.At(e.fastingStart)
		s.FastingStartTime = &start
	}
	if err := e.p.Save(s); err != nil {
		e.log.Warn().Err(err).Msg("state save failed; in-memory state remains authoritative")
	}
}

// DailyLog returns the log for the given day, if one exists.
func (e *Engine) DailyLog(d entry.Day) (*daylog.Log, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.logs.Get(d)
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// HasFasting reports whether a log with a fasting snapshot exists for the day.
func (e *Engine) HasFasting(d entry.Day) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logs.HasFasting(d)
}

// HasWater reports whether a log with a non-zero water total exists for the day.
func (e *Engine) HasWater(d entry.Day) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.logs.HasWater(d)
}

// Logs returns all daily logs sorted by date ascending.
func (e *Engine) Logs() []*daylog.Log {
	e.mu.Lock()
	defer e.mu.Unlock()
	all := e.logs.All()
	out := make([]*daylog.Log, len(all))
	for i, l := range all {
		out[i] = l.Clone()
	}
	return out
}
