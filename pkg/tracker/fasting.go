package tracker

import (
	"sort"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/timeutil"
)

// Window is a named fasting/eating split.
type Window struct {
	FastingHours int
	EatingHours  int
	Name         string
}

// Presets are the common fasting windows offered by the picker.
var Presets = []Window{
	{16, 8, "16:8"},
	{18, 6, "18:6"},
	{20, 4, "20:4"},
	{23, 1, "OMAD (23:1)"},
}

// StartFasting begins a new fast at the current time. Valid only while idle.
// The new open entry is appended to the history and snapshotted into the
// start day's log.
func (e *Engine) StartFasting() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	if e.isFasting {
		return ErrAlreadyFasting
	}

	now := e.now()
	f := entry.NewFasting(now, e.fastingWindowHours)
	e.history = append(e.history, f)
	e.isFasting = true
	e.fastingStart = now

	e.logs.SetFasting(entry.DayOf(now), f.Clone())
	e.save()
	return nil
}

// StopFasting closes the active fast at the current time. The closed snapshot
// attaches to the day the fast stopped, which for a fast spanning midnight is
// a different log than the one written at start.
func (e *Engine) StopFasting() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	if !e.isFasting {
		return ErrNotFasting
	}
	f := e.openFast()
	if f == nil {
		// Flags said fasting but no open entry survived; recover to idle.
		e.isFasting = false
		e.fastingStart = time.Time{}
		return ErrNotFasting
	}

	now := e.now()
	f.Close(now)
	e.isFasting = false
	e.fastingStart = time.Time{}

	e.logs.SetFasting(entry.DayOf(now), f.Clone())
	e.save()
	return nil
}

// SetFastingWindow configures the fasting/eating split. Both halves must be
// positive and sum to 24 hours. Pure configuration: the running session keeps
// the window it was started with.
func (e *Engine) SetFastingWindow(fastingHours, eatingHours int) error {
	if fastingHours <= 0 || eatingHours <= 0 || fastingHours+eatingHours != 24 {
		return ErrInvalidWindow
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	e.fastingWindowHours = fastingHours
	e.eatingWindowHours = eatingHours
	e.save()
	return nil
}

// UpdateHistoricalFast rewrites both timestamps of the entry with the given
// id, open or closed. Every log snapshot referencing the id is cleared first,
// then the closed entry is re-snapshotted onto its new day, so an edit that
// moves a fast across a day boundary leaves no dangling reference behind.
// Editing the active fast closes it and returns the session to idle.
func (e *Engine) UpdateHistoricalFast(id string, newStart, newEnd time.Time) error {
	if !newEnd.After(newStart) {
		return ErrInvalidRange
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	f := e.findFast(id)
	if f == nil {
		return ErrNotFound
	}

	wasOpen := f.Open()
	f.StartTime = entry.At(newStart)
	f.Close(newEnd)
	if wasOpen && e.isFasting {
		e.isFasting = false
		e.fastingStart = time.Time{}
	}

	for {
		l, ok := e.logs.FindFasting(id)
		if !ok {
			break
		}
		e.logs.ClearFasting(l.Date)
	}
	e.logs.SetFasting(f.Day(), f.Clone())
	e.save()
	return nil
}

// AddHistoricalFast records a completed fast that was never tracked live.
// The log it lands in is keyed by the supplied anchor date, not derived from
// the end time.
func (e *Engine) AddHistoricalFast(date, start, end time.Time) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.checkRollover()

	f := entry.NewFasting(start, e.fastingWindowHours)
	f.Close(end)
	e.history = append(e.history, f)

	e.logs.SetFasting(entry.DayOf(date), f.Clone())
	e.save()
	return nil
}

// IsFasting reports whether a fast is running.
func (e *Engine) IsFasting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isFasting
}

// FastingStart returns the start of the active fast.
func (e *Engine) FastingStart() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isFasting {
		return time.Time{}, false
	}
	return e.fastingStart, true
}

// Elapsed returns how long the active fast has been running.
func (e *Engine) Elapsed() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isFasting {
		return 0, false
	}
	return e.now().Sub(e.fastingStart), true
}

// Progress returns elapsed time over the fasting window, clamped to [0, 1].
// Zero while idle.
func (e *Engine) Progress() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isFasting {
		return 0
	}
	elapsed := e.now().Sub(e.fastingStart)
	total := time.Duration(e.fastingWindowHours) * time.Hour
	return clamp(float64(elapsed) / float64(total))
}

// Remaining returns the time until the fasting window completes, zero once
// the window has passed.
func (e *Engine) Remaining() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isFasting {
		return 0, false
	}
	end := e.fastingStart.Add(time.Duration(e.fastingWindowHours) * time.Hour)
	left := end.Sub(e.now())
	if left < 0 {
		left = 0
	}
	return left, true
}

// FastingEnd returns the instant the active fast reaches its goal.
func (e *Engine) FastingEnd() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.isFasting {
		return time.Time{}, false
	}
	return e.fastingStart.Add(time.Duration(e.fastingWindowHours) * time.Hour), true
}

// FastingWindow returns the configured fasting and eating hours.
func (e *Engine) FastingWindow() (fastingHours, eatingHours int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fastingWindowHours, e.eatingWindowHours
}

// History returns all fasting entries sorted by start time ascending.
func (e *Engine) History() []*entry.FastingEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*entry.FastingEntry, 0, len(e.history))
	for _, f := range e.history {
		if f != nil {
			out = append(out, f.Clone())
		}
	}
	sortFasts(out)
	return out
}

// FormattedElapsed renders the elapsed time as HH:MM:SS, or 00:00:00 while
// idle.
func (e *Engine) FormattedElapsed() string {
	elapsed, ok := e.Elapsed()
	if !ok {
		return "00:00:00"
	}
	return timeutil.Clock(elapsed)
}

// FormattedRemaining renders the countdown to the fasting goal, reporting
// completion once the window has passed.
func (e *Engine) FormattedRemaining() string {
	left, ok := e.Remaining()
	if !ok {
		return "Not fasting"
	}
	if left <= 0 {
		return "Fasting complete!"
	}
	return timeutil.Countdown(left)
}

func sortFasts(fasts []*entry.FastingEntry) {
	sort.SliceStable(fasts, func(i, j int) bool {
		lt := fasts[i].StartTime.Time
		rt := fasts[j].StartTime.Time
		if lt.Equal(rt) {
			return fasts[i].ID < fasts[j].ID
		}
		return lt.Before(rt)
	})
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
