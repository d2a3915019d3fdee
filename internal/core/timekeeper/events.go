package timekeeper

import "time"

// State represents an engine's run state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateFinished State = "finished"
)

// Kind names an engine.
type Kind string

const (
	KindCountdown Kind = "countdown"
	KindStopwatch Kind = "stopwatch"
)

// EventType defines the type of engine event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventTick        EventType = "tick"
	EventLap         EventType = "lap"
	EventFinished    EventType = "finished"
	EventReset       EventType = "reset"
	EventConfigured  EventType = "configured"
)

// Event represents an engine update for observers.
type Event struct {
	Type             EventType
	Kind             Kind
	State            State
	RemainingSeconds int
	TargetSeconds    int
	ElapsedMillis    int64
	Laps             int
	At               time.Time
}
