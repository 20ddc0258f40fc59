package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"tableflip.dev/fasttrack/pkg/entry"
	"tableflip.dev/fasttrack/pkg/store"
)

// memoryPersistence round-trips state through JSON on every save so tests
// exercise the same encoding the diskv store uses.
type memoryPersistence struct {
	mu       sync.Mutex
	blob     []byte
	saves    int
	failNext bool
}

func (m *memoryPersistence) Load(_ context.Context) (*store.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.blob == nil {
		return store.NewState(), nil
	}
	s := store.NewState()
	if err := json.Unmarshal(m.blob, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *memoryPersistence) Save(s *store.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext {
		m.failNext = false
		return errors.New("save failed")
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.blob = data
	m.saves++
	return nil
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

// clock is a settable time source.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func newClock(t time.Time) *clock { return &clock{t: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func newTestEngine(t *testing.T, at time.Time) (*Engine, *memoryPersistence, *clock) {
	t.Helper()
	mp := &memoryPersistence{}
	ck := newClock(at)
	e, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	return e, mp, ck
}

// noon returns a fixed local reference instant away from midnight.
func noon() time.Time {
	return time.Date(2025, time.March, 10, 12, 0, 0, 0, time.Local)
}

func TestStartStopLifecycle(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if e.IsFasting() {
		t.Fatal("new engine should be idle")
	}
	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	if !e.IsFasting() {
		t.Fatal("engine should be fasting after start")
	}
	if err := e.StartFasting(); !errors.Is(err, ErrAlreadyFasting) {
		t.Fatalf("second StartFasting() = %v, want ErrAlreadyFasting", err)
	}

	day := entry.DayOf(noon())
	log, ok := e.DailyLog(day)
	if !ok {
		t.Fatal("start day should have a daily log")
	}
	if log.Fasting == nil || !log.Fasting.Open() {
		t.Fatal("start day log should hold the open snapshot")
	}

	ck.Advance(16 * time.Hour)
	if err := e.StopFasting(); err != nil {
		t.Fatalf("StopFasting() = %v", err)
	}
	if e.IsFasting() {
		t.Fatal("engine should be idle after stop")
	}
	if err := e.StopFasting(); !errors.Is(err, ErrNotFasting) {
		t.Fatalf("second StopFasting() = %v, want ErrNotFasting", err)
	}

	history := e.History()
	if len(history) != 1 {
		t.Fatalf("len(History()) = %d, want 1", len(history))
	}
	f := history[0]
	if f.Open() {
		t.Fatal("stopped fast should be closed")
	}
	if got, want := f.EndTime.Time, noon().Add(16*time.Hour); !got.Equal(want) {
		t.Fatalf("end time = %v, want %v", got, want)
	}
}

func TestAtMostOneOpenFast(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	for i := 0; i < 5; i++ {
		if err := e.StartFasting(); err != nil {
			t.Fatalf("cycle %d: StartFasting() = %v", i, err)
		}
		open := 0
		for _, f := range e.History() {
			if f.Open() {
				open++
			}
		}
		if open != 1 {
			t.Fatalf("cycle %d: open fasts = %d, want 1", i, open)
		}
		ck.Advance(time.Hour)
		if err := e.StopFasting(); err != nil {
			t.Fatalf("cycle %d: StopFasting() = %v", i, err)
		}
		ck.Advance(time.Hour)
	}
	for _, f := range e.History() {
		if f.Open() {
			t.Fatal("no fast should remain open after all stops")
		}
	}
}

func TestProgressAndRemaining(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if err := e.SetFastingWindow(16, 8); err != nil {
		t.Fatalf("SetFastingWindow() = %v", err)
	}
	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}

	ck.Advance(8 * time.Hour)
	if got := e.Progress(); got != 0.5 {
		t.Fatalf("Progress() at T+8h = %v, want 0.5", got)
	}
	left, ok := e.Remaining()
	if !ok || left != 8*time.Hour {
		t.Fatalf("Remaining() at T+8h = %v, %v, want 8h", left, ok)
	}

	ck.Advance(8 * time.Hour)
	if got := e.Progress(); got != 1.0 {
		t.Fatalf("Progress() at T+16h = %v, want 1.0", got)
	}
	if got := e.FormattedRemaining(); got != "Fasting complete!" {
		t.Fatalf("FormattedRemaining() at T+16h = %q, want %q", got, "Fasting complete!")
	}

	// Past the window the progress stays clamped.
	ck.Advance(4 * time.Hour)
	if got := e.Progress(); got != 1.0 {
		t.Fatalf("Progress() past window = %v, want 1.0", got)
	}

	end, ok := e.FastingEnd()
	if !ok || !end.Equal(noon().Add(16*time.Hour)) {
		t.Fatalf("FastingEnd() = %v, %v", end, ok)
	}
}

func TestSetFastingWindowValidation(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	tests := []struct {
		name     string
		fasting  int
		eating   int
		wantErr  error
	}{
		{"preset 16:8", 16, 8, nil},
		{"preset OMAD", 23, 1, nil},
		{"custom 14:10", 14, 10, nil},
		{"does not sum to 24", 16, 9, ErrInvalidWindow},
		{"zero eating", 24, 0, ErrInvalidWindow},
		{"negative", -1, 25, ErrInvalidWindow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := e.SetFastingWindow(tc.fasting, tc.eating)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("SetFastingWindow(%d, %d) = %v, want %v", tc.fasting, tc.eating, err, tc.wantErr)
			}
			if tc.wantErr == nil {
				f, eat := e.FastingWindow()
				if f != tc.fasting || eat != tc.eating {
					t.Fatalf("FastingWindow() = %d, %d", f, eat)
				}
			}
		})
	}
}

func TestWindowChangeDoesNotTouchSession(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	if err := e.SetFastingWindow(18, 6); err != nil {
		t.Fatalf("SetFastingWindow() = %v", err)
	}
	if !e.IsFasting() {
		t.Fatal("window change must not stop the session")
	}
	if got := e.History()[0].FastingWindowHours; got != 16 {
		t.Fatalf("running fast window = %d, want the window it started with (16)", got)
	}
}

func TestAddWaterTotals(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater(500) = %v", err)
	}
	if err := e.AddWater(750); err != nil {
		t.Fatalf("AddWater(750) = %v", err)
	}
	if got := e.CurrentDayWaterTotal(); got != 1.25 {
		t.Fatalf("CurrentDayWaterTotal() = %v, want 1.25", got)
	}
	if got := e.WaterProgress(); got != 0.625 {
		t.Fatalf("WaterProgress() = %v, want 0.625", got)
	}

	if err := e.AddWater(0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("AddWater(0) = %v, want ErrInvalidAmount", err)
	}
	if err := e.AddWater(-100); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("AddWater(-100) = %v, want ErrInvalidAmount", err)
	}
	if got := e.CurrentDayWaterTotal(); got != 1.25 {
		t.Fatalf("rejected commands must not change state, total = %v", got)
	}
}

func TestWaterTargetEvent(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	if err := e.AddWater(1000); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	select {
	case ev := <-e.Events():
		t.Fatalf("unexpected event before target: %+v", ev)
	default:
	}

	if err := e.AddWater(1000); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	select {
	case ev := <-e.Events():
		if ev.Type != EventWaterTargetReached {
			t.Fatalf("event type = %v, want EventWaterTargetReached", ev.Type)
		}
	default:
		t.Fatal("crossing the target should emit an event")
	}

	// Already past the target: no second edge.
	if err := e.AddWater(250); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	select {
	case ev := <-e.Events():
		t.Fatalf("unexpected event past target: %+v", ev)
	default:
	}
}

func TestResetDailyWater(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	yesterday := entry.DayOf(noon())

	ck.Advance(24 * time.Hour)
	if err := e.AddWater(750); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	if err := e.ResetDailyWater(); err != nil {
		t.Fatalf("ResetDailyWater() = %v", err)
	}

	if got := e.CurrentDayWaterTotal(); got != 0 {
		t.Fatalf("today's total after reset = %v, want 0", got)
	}
	if got := e.WaterTotalOn(yesterday); got != 0.5 {
		t.Fatalf("yesterday's entries must survive the reset, got %v", got)
	}
	log, ok := e.DailyLog(yesterday)
	if !ok || log.WaterIntake != 0.5 {
		t.Fatalf("yesterday's log = %+v, %v, want 0.5 litres", log, ok)
	}
}

func TestRollover(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	if err := e.AddWater(250); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	prev := entry.DayOf(noon())

	// Cross midnight; the next command finalizes the previous day.
	ck.Advance(24 * time.Hour)
	if err := e.AddWater(1000); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}

	log, ok := e.DailyLog(prev)
	if !ok {
		t.Fatal("previous day should have a finalized log")
	}
	if log.WaterIntake != 0.75 {
		t.Fatalf("previous day water = %v, want 0.75", log.WaterIntake)
	}
	if got := e.CurrentDayWaterTotal(); got != 1.0 {
		t.Fatalf("today's total = %v, must not carry over from the previous day", got)
	}
}

func TestCurrentDayTotalNeverDrifts(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	// A pure query straddling midnight reflects the new day without any
	// command having run first.
	ck.Advance(24 * time.Hour)
	if got := e.CurrentDayWaterTotal(); got != 0 {
		t.Fatalf("CurrentDayWaterTotal() after midnight = %v, want 0", got)
	}
	if got := e.WaterTotalOn(entry.DayOf(noon())); got != 0.5 {
		t.Fatalf("WaterTotalOn(yesterday) = %v, want 0.5", got)
	}
}

func TestSetHistoricalWaterIntakeOverwrites(t *testing.T) {
	e, mp, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	yesterday := noon()

	ck.Advance(24 * time.Hour)
	if err := e.SetHistoricalWaterIntake(yesterday, 1.8); err != nil {
		t.Fatalf("SetHistoricalWaterIntake() = %v", err)
	}
	log, ok := e.DailyLog(entry.DayOf(yesterday))
	if !ok || log.WaterIntake != 1.8 {
		t.Fatalf("yesterday's log = %+v, %v, want exactly 1.8", log, ok)
	}

	// The override has no backing entry: a rebuild from raw events yields the
	// recorded 0.5, not the override. This asymmetry is deliberate.
	var saved store.State
	if err := json.Unmarshal(mp.blob, &saved); err != nil {
		t.Fatalf("unmarshal saved state: %v", err)
	}
	saved.DailyLogs = nil
	saved.HasDailyLogs = false
	data, err := json.Marshal(&saved)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	mp.blob = data

	rebuilt, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	log, ok = rebuilt.DailyLog(entry.DayOf(yesterday))
	if !ok || log.WaterIntake != 0.5 {
		t.Fatalf("rebuilt yesterday = %+v, %v, want 0.5 from raw events", log, ok)
	}
}

func TestUpdateHistoricalFast(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	ck.Advance(16 * time.Hour)
	if err := e.StopFasting(); err != nil {
		t.Fatalf("StopFasting() = %v", err)
	}
	id := e.History()[0].ID
	oldDay := entry.DayOf(noon().Add(16 * time.Hour))

	// Move the fast two days back.
	newStart := noon().AddDate(0, 0, -2)
	newEnd := newStart.Add(14 * time.Hour)
	if err := e.UpdateHistoricalFast(id, newStart, newEnd); err != nil {
		t.Fatalf("UpdateHistoricalFast() = %v", err)
	}

	if e.HasFasting(oldDay) {
		t.Fatal("old day must not keep a stale snapshot after the edit")
	}
	newDay := entry.DayOf(newEnd)
	log, ok := e.DailyLog(newDay)
	if !ok || log.Fasting == nil {
		t.Fatalf("new day log = %+v, %v, want the moved snapshot", log, ok)
	}
	if !log.Fasting.StartTime.Time.Equal(newStart) || !log.Fasting.EndTime.Time.Equal(newEnd) {
		t.Fatalf("snapshot times = %v..%v", log.Fasting.StartTime, log.Fasting.EndTime)
	}

	if err := e.UpdateHistoricalFast("no-such-id", newStart, newEnd); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown id = %v, want ErrNotFound", err)
	}
	if err := e.UpdateHistoricalFast(id, newEnd, newStart); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("inverted range = %v, want ErrInvalidRange", err)
	}
}

func TestUpdateHistoricalFastClosesLiveSession(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	id := e.History()[0].ID
	if err := e.UpdateHistoricalFast(id, noon(), noon().Add(2*time.Hour)); err != nil {
		t.Fatalf("UpdateHistoricalFast() = %v", err)
	}
	if e.IsFasting() {
		t.Fatal("editing the live entry to a closed range must end the session")
	}
	for _, f := range e.History() {
		if f.Open() {
			t.Fatal("no open entry should remain")
		}
	}
}

func TestAddHistoricalFastAnchorsToSuppliedDate(t *testing.T) {
	e, _, _ := newTestEngine(t, noon())

	anchor := noon().AddDate(0, 0, -5)
	start := anchor.Add(-20 * time.Hour) // starts the prior evening
	end := anchor.Add(-2 * time.Hour)
	if err := e.AddHistoricalFast(anchor, start, end); err != nil {
		t.Fatalf("AddHistoricalFast() = %v", err)
	}

	log, ok := e.DailyLog(entry.DayOf(anchor))
	if !ok || log.Fasting == nil {
		t.Fatalf("anchor day log = %+v, %v", log, ok)
	}
	if log.Fasting.Open() {
		t.Fatal("historical fast must be closed")
	}
	if e.IsFasting() {
		t.Fatal("historical create must not touch the live session")
	}
}

func TestMidnightSpanningFast(t *testing.T) {
	late := time.Date(2025, time.March, 10, 23, 0, 0, 0, time.Local)
	e, _, ck := newTestEngine(t, late)

	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	startDay := entry.DayOf(late)

	ck.Advance(8 * time.Hour) // 07:00 next day
	if err := e.StopFasting(); err != nil {
		t.Fatalf("StopFasting() = %v", err)
	}
	stopDay := entry.DayOf(late.Add(8 * time.Hour))

	// Start day keeps the open snapshot written at start; the stop day gets
	// the closed one.
	startLog, ok := e.DailyLog(startDay)
	if !ok || startLog.Fasting == nil || !startLog.Fasting.Open() {
		t.Fatalf("start day log = %+v, %v, want the open snapshot", startLog, ok)
	}
	stopLog, ok := e.DailyLog(stopDay)
	if !ok || stopLog.Fasting == nil || stopLog.Fasting.Open() {
		t.Fatalf("stop day log = %+v, %v, want the closed snapshot", stopLog, ok)
	}
}

func TestLoadRebuildsMissingIndex(t *testing.T) {
	e, mp, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}
	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	ck.Advance(12 * time.Hour)
	if err := e.StopFasting(); err != nil {
		t.Fatalf("StopFasting() = %v", err)
	}

	var saved store.State
	if err := json.Unmarshal(mp.blob, &saved); err != nil {
		t.Fatalf("unmarshal saved state: %v", err)
	}
	saved.DailyLogs = nil
	saved.HasDailyLogs = false
	data, err := json.Marshal(&saved)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	mp.blob = data

	rebuilt, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	day := entry.DayOf(noon())
	if !rebuilt.HasWater(day) {
		t.Fatal("rebuilt index should have the water day")
	}
	if !rebuilt.HasFasting(entry.DayOf(noon().Add(12 * time.Hour))) {
		t.Fatal("rebuilt index should attach the closed fast to its end day")
	}
}

func TestLoadRestoresLiveSession(t *testing.T) {
	e, mp, ck := newTestEngine(t, noon())

	if err := e.StartFasting(); err != nil {
		t.Fatalf("StartFasting() = %v", err)
	}
	ck.Advance(3 * time.Hour)

	reloaded, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if !reloaded.IsFasting() {
		t.Fatal("reload should restore the live session")
	}
	start, ok := reloaded.FastingStart()
	if !ok || !start.Equal(noon()) {
		t.Fatalf("FastingStart() = %v, %v, want %v", start, ok, noon())
	}
	elapsed, ok := reloaded.Elapsed()
	if !ok || elapsed != 3*time.Hour {
		t.Fatalf("Elapsed() = %v, %v, want 3h", elapsed, ok)
	}
}

func TestReloadOfConsistentStateDoesNotSave(t *testing.T) {
	e, mp, ck := newTestEngine(t, noon())

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() = %v", err)
	}

	mp.mu.Lock()
	before := mp.saves
	mp.mu.Unlock()

	// A second process watching the store reloads on every write event.
	// That reload must not write back, or each write would trigger
	// another round of events and the watcher would feed itself forever.
	reloaded, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if got := reloaded.CurrentDayWaterTotal(); got != 0.5 {
		t.Fatalf("CurrentDayWaterTotal() = %v, want 0.5", got)
	}

	mp.mu.Lock()
	after := mp.saves
	mp.mu.Unlock()
	if after != before {
		t.Fatalf("reload of consistent state wrote the store, saves %d -> %d", before, after)
	}
}

func TestLoadFromFlagsSnapshotsSessionLog(t *testing.T) {
	// History lost; only the persisted session flags survive.
	start := entry.At(noon())
	reset := entry.At(noon())
	s := store.NewState()
	s.IsFasting = true
	s.FastingStartTime = &start
	s.LastWaterReset = &reset
	s.HasDailyLogs = true

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal state: %v", err)
	}
	mp := &memoryPersistence{blob: data}
	ck := newClock(noon().Add(2 * time.Hour))

	e, err := New(context.Background(), mp, WithClock(ck.Now))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if !e.IsFasting() {
		t.Fatal("flags should restore the live session")
	}
	day := entry.DayOf(noon())
	if !e.HasFasting(day) {
		t.Fatal("recovered session should be snapshotted into the start day's log")
	}
	log, ok := e.DailyLog(day)
	if !ok || log.Fasting == nil || !log.Fasting.Open() {
		t.Fatalf("DailyLog(%s) should hold the open entry", day)
	}
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	e, mp, _ := newTestEngine(t, noon())

	mp.mu.Lock()
	mp.failNext = true
	mp.mu.Unlock()

	if err := e.AddWater(500); err != nil {
		t.Fatalf("AddWater() with failing save = %v, want nil", err)
	}
	if got := e.CurrentDayWaterTotal(); got != 0.5 {
		t.Fatalf("in-memory state must stay authoritative, total = %v", got)
	}
}

func TestNoDuplicateDayKeys(t *testing.T) {
	e, _, ck := newTestEngine(t, noon())

	for i := 0; i < 3; i++ {
		if err := e.AddWater(250); err != nil {
			t.Fatalf("AddWater() = %v", err)
		}
		if err := e.StartFasting(); err != nil {
			t.Fatalf("StartFasting() = %v", err)
		}
		ck.Advance(time.Hour)
		if err := e.StopFasting(); err != nil {
			t.Fatalf("StopFasting() = %v", err)
		}
		ck.Advance(7 * time.Hour)
	}

	seen := make(map[string]bool)
	for _, l := range e.Logs() {
		if seen[l.Date.Key()] {
			t.Fatalf("duplicate day key %s", l.Date.Key())
		}
		seen[l.Date.Key()] = true
	}
}
