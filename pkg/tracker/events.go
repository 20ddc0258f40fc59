package tracker

import "tableflip.dev/fasttrack/pkg/entry"

// EventType describes an engine notification.
type EventType int

const (
	// EventWaterTargetReached fires when a water addition crosses the daily
	// target from below. The celebration UI observes this edge.
	EventWaterTargetReached EventType = iota

	// EventDayRolledOver fires when a command detects a local-day boundary
	// crossing and finalizes the previous day's log.
	EventDayRolledOver
)

// Event is an engine notification delivered on Events().
type Event struct {
	Type EventType
	Day  entry.Day
}

func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}
