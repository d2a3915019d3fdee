package timekeeper

import (
	"sync"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/ticker"
)

// StopwatchSnapshot is a read-only copy of the stopwatch's state.
type StopwatchSnapshot struct {
	State         State
	ElapsedMillis int64
	Laps          []int64
}

// Stopwatch counts elapsed time up without bound and records laps.
type Stopwatch struct {
	mu        sync.Mutex
	options   Options
	interval  time.Duration
	elapsed   time.Duration
	laps      []int64
	state     State
	handle    ticker.Handle
	observers observers
}

// NewStopwatch creates an idle stopwatch at zero.
func NewStopwatch(config model.StopwatchConfig, options Options) *Stopwatch {
	if config.TickInterval < time.Millisecond {
		config.TickInterval = 10 * time.Millisecond
	}
	return &Stopwatch{
		options:  options.withDefaults(),
		interval: config.TickInterval,
		state:    StateIdle,
	}
}

// Kind reports KindStopwatch.
func (stopwatch *Stopwatch) Kind() Kind {
	return KindStopwatch
}

// Subscribe registers a new observer channel.
func (stopwatch *Stopwatch) Subscribe(buffer int) <-chan Event {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.observers.subscribeLocked(buffer)
}

// Start begins counting. It is a no-op while running.
func (stopwatch *Stopwatch) Start() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()

	if stopwatch.state == StateRunning {
		stopwatch.ignoredLocked("start")
		return
	}
	stopwatch.disarmLocked()
	stopwatch.handle = stopwatch.options.Ticker.Arm(stopwatch.interval, stopwatch.tick)
	stopwatch.transitionLocked(StateRunning)
	stopwatch.options.Recorder.IncIntent(string(KindStopwatch), "start", true)
}

// Pause stops counting and keeps the elapsed time and laps.
func (stopwatch *Stopwatch) Pause() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.pauseLocked("pause")
}

// Deactivate is called when the stopwatch's tab loses focus. It behaves
// exactly like Pause.
func (stopwatch *Stopwatch) Deactivate() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.pauseLocked("deactivate")
}

// Reset stops counting, zeroes the elapsed time and clears all laps.
func (stopwatch *Stopwatch) Reset() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()

	stopwatch.disarmLocked()
	stopwatch.elapsed = 0
	stopwatch.laps = nil
	stopwatch.transitionLocked(StateIdle)
	stopwatch.options.Recorder.IncIntent(string(KindStopwatch), "reset", true)
	stopwatch.emitLocked(EventReset)
}

// Lap records the current elapsed time as the most recent lap. It is a
// no-op unless running.
func (stopwatch *Stopwatch) Lap() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()

	if stopwatch.state != StateRunning {
		stopwatch.ignoredLocked("lap")
		return
	}
	stopwatch.laps = append([]int64{stopwatch.elapsed.Milliseconds()}, stopwatch.laps...)
	stopwatch.options.Recorder.IncLap()
	stopwatch.options.Recorder.IncIntent(string(KindStopwatch), "lap", true)
	stopwatch.emitLocked(EventLap)
}

// Close disarms the ticker and closes all observer channels.
func (stopwatch *Stopwatch) Close() {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	stopwatch.disarmLocked()
	stopwatch.transitionLocked(StateIdle)
	stopwatch.observers.closeLocked()
}

// Snapshot returns the current state. Laps are copied, most recent first.
func (stopwatch *Stopwatch) Snapshot() StopwatchSnapshot {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return StopwatchSnapshot{
		State:         stopwatch.state,
		ElapsedMillis: stopwatch.elapsed.Milliseconds(),
		Laps:          append([]int64(nil), stopwatch.laps...),
	}
}

// Running reports whether the stopwatch is ticking.
func (stopwatch *Stopwatch) Running() bool {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return stopwatch.state == StateRunning
}

// Display renders the elapsed time as MM:SS.CC.
func (stopwatch *Stopwatch) Display() string {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()
	return FormatStopwatch(stopwatch.elapsed.Milliseconds())
}

func (stopwatch *Stopwatch) tick(handle ticker.Handle) {
	stopwatch.mu.Lock()
	defer stopwatch.mu.Unlock()

	if handle != stopwatch.handle || stopwatch.state != StateRunning {
		return
	}
	stopwatch.elapsed += stopwatch.interval
	stopwatch.options.Recorder.IncTick(string(KindStopwatch))
	stopwatch.emitLocked(EventTick)
}

func (stopwatch *Stopwatch) pauseLocked(intent string) {
	if stopwatch.state != StateRunning {
		stopwatch.ignoredLocked(intent)
		return
	}
	stopwatch.disarmLocked()
	stopwatch.transitionLocked(StateIdle)
	stopwatch.options.Recorder.IncIntent(string(KindStopwatch), intent, true)
}

func (stopwatch *Stopwatch) disarmLocked() {
	if stopwatch.handle == 0 {
		return
	}
	stopwatch.options.Ticker.Disarm(stopwatch.handle)
	stopwatch.handle = 0
}

func (stopwatch *Stopwatch) transitionLocked(next State) {
	previous := stopwatch.state
	if previous == next {
		return
	}
	stopwatch.state = next
	stopwatch.options.Recorder.IncTransition(string(KindStopwatch), string(previous), string(next))
	stopwatch.options.Logger.Debug("stopwatch state change",
		"from", previous,
		"to", next,
		"elapsed", FormatStopwatch(stopwatch.elapsed.Milliseconds()),
	)
	stopwatch.emitLocked(EventStateChange)
}

func (stopwatch *Stopwatch) ignoredLocked(intent string) {
	stopwatch.options.Recorder.IncIntent(string(KindStopwatch), intent, false)
	stopwatch.options.Logger.Debug("stopwatch intent ignored", "intent", intent, "state", stopwatch.state)
}

func (stopwatch *Stopwatch) emitLocked(eventType EventType) {
	stopwatch.observers.emitLocked(Event{
		Type:          eventType,
		Kind:          KindStopwatch,
		State:         stopwatch.state,
		ElapsedMillis: stopwatch.elapsed.Milliseconds(),
		Laps:          len(stopwatch.laps),
		At:            stopwatch.options.Clock.Now(),
	})
}
