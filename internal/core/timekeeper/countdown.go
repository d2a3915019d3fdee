package timekeeper

import (
	"sync"
	"time"

	"timekeeper/internal/core/model"
	"timekeeper/internal/core/ticker"
)

const (
	minField = 0
	maxField = 59
)

// CountdownSnapshot is a read-only copy of the countdown's state.
type CountdownSnapshot struct {
	State            State
	Minutes          int
	Seconds          int
	TargetSeconds    int
	RemainingSeconds int
	Finished         bool
}

// Countdown counts a configured target down to zero, one second per tick.
type Countdown struct {
	mu        sync.Mutex
	options   Options
	interval  time.Duration
	minutes   int
	seconds   int
	remaining int
	state     State
	handle    ticker.Handle
	observers observers
}

// NewCountdown creates an idle countdown whose remaining time equals the
// configured target.
func NewCountdown(config model.CountdownConfig, options Options) *Countdown {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	countdown := &Countdown{
		options:  options.withDefaults(),
		interval: config.TickInterval,
		minutes:  clampField(config.Minutes),
		seconds:  clampField(config.Seconds),
		state:    StateIdle,
	}
	countdown.remaining = countdown.targetLocked()
	return countdown
}

// Kind reports KindCountdown.
func (countdown *Countdown) Kind() Kind {
	return KindCountdown
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.observers.subscribeLocked(buffer)
}

// Configure sets the target, saturating minutes and seconds to [0,59].
// It is a no-op while running and never touches the remaining time.
func (countdown *Countdown) Configure(minutes, seconds int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.configureLocked("configure", minutes, seconds)
}

// AdjustMinutes shifts the configured minutes by delta.
func (countdown *Countdown) AdjustMinutes(delta int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.configureLocked("adjust_minutes", countdown.minutes+delta, countdown.seconds)
}

// AdjustSeconds shifts the configured seconds by delta.
func (countdown *Countdown) AdjustSeconds(delta int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.configureLocked("adjust_seconds", countdown.minutes, countdown.seconds+delta)
}

// Retarget replaces the configured target from outside the countdown's own
// controls, e.g. a settings reload. Unchanged targets and running countdowns
// are left alone. The remaining time follows the new target only while the
// countdown is idle at its previous target; paused progress and Finished are kept.
func (countdown *Countdown) Retarget(minutes, seconds int) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	minutes, seconds = clampField(minutes), clampField(seconds)
	if minutes == countdown.minutes && seconds == countdown.seconds {
		return
	}
	untouched := countdown.state == StateIdle && countdown.remaining == countdown.targetLocked()
	countdown.configureLocked("retarget", minutes, seconds)
	if untouched && countdown.state == StateIdle {
		countdown.remaining = countdown.targetLocked()
		countdown.emitLocked(EventConfigured)
	}
}

// ApplyConfiguration loads the target into the remaining time and clears
// Finished. It is a no-op while running.
func (countdown *Countdown) ApplyConfiguration() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	if countdown.state == StateRunning {
		countdown.ignoredLocked("apply")
		return
	}
	countdown.remaining = countdown.targetLocked()
	countdown.transitionLocked(StateIdle)
	countdown.options.Recorder.IncIntent(string(KindCountdown), "apply", true)
	countdown.emitLocked(EventConfigured)
}

// Start begins counting down. It does nothing when already running or when
// no time remains.
func (countdown *Countdown) Start() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	if countdown.state == StateRunning || countdown.remaining <= 0 {
		countdown.ignoredLocked("start")
		return
	}
	countdown.armLocked()
	countdown.transitionLocked(StateRunning)
	countdown.options.Recorder.IncIntent(string(KindCountdown), "start", true)
}

// Pause stops ticking and keeps the remaining time.
func (countdown *Countdown) Pause() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.pauseLocked("pause")
}

// Deactivate is called when the countdown's tab loses focus. It behaves
// exactly like Pause.
func (countdown *Countdown) Deactivate() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.pauseLocked("deactivate")
}

// Reset stops ticking and restores the remaining time to the target.
func (countdown *Countdown) Reset() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	countdown.disarmLocked()
	countdown.remaining = countdown.targetLocked()
	countdown.transitionLocked(StateIdle)
	countdown.options.Recorder.IncIntent(string(KindCountdown), "reset", true)
	countdown.emitLocked(EventReset)
}

// Close disarms the ticker and closes all observer channels.
func (countdown *Countdown) Close() {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	countdown.disarmLocked()
	if countdown.state == StateRunning {
		countdown.transitionLocked(StateIdle)
	}
	countdown.observers.closeLocked()
}

// Snapshot returns the current state.
func (countdown *Countdown) Snapshot() CountdownSnapshot {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return CountdownSnapshot{
		State:            countdown.state,
		Minutes:          countdown.minutes,
		Seconds:          countdown.seconds,
		TargetSeconds:    countdown.targetLocked(),
		RemainingSeconds: countdown.remaining,
		Finished:         countdown.state == StateFinished,
	}
}

// Running reports whether the countdown is ticking.
func (countdown *Countdown) Running() bool {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return countdown.state == StateRunning
}

// Display renders the remaining time as MM:SS.
func (countdown *Countdown) Display() string {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()
	return FormatCountdown(countdown.remaining)
}

// tick decrements and finishes in one step so remaining never reads 0 while running.
func (countdown *Countdown) tick(handle ticker.Handle) {
	countdown.mu.Lock()
	defer countdown.mu.Unlock()

	if handle != countdown.handle || countdown.state != StateRunning {
		return
	}
	countdown.options.Recorder.IncTick(string(KindCountdown))

	if countdown.remaining <= 1 {
		countdown.disarmLocked()
		countdown.remaining = 0
		countdown.transitionLocked(StateFinished)
		countdown.options.Recorder.IncFinished()
		countdown.options.Logger.Info("countdown finished", "target", FormatCountdown(countdown.targetLocked()))
		countdown.emitLocked(EventFinished)
		return
	}
	countdown.remaining--
	countdown.emitLocked(EventTick)
}

func (countdown *Countdown) configureLocked(intent string, minutes, seconds int) {
	if countdown.state == StateRunning {
		countdown.ignoredLocked(intent)
		return
	}
	countdown.minutes = clampField(minutes)
	countdown.seconds = clampField(seconds)
	countdown.options.Recorder.IncIntent(string(KindCountdown), intent, true)
	countdown.emitLocked(EventConfigured)
}

func (countdown *Countdown) pauseLocked(intent string) {
	if countdown.state != StateRunning {
		countdown.ignoredLocked(intent)
		return
	}
	countdown.disarmLocked()
	countdown.transitionLocked(StateIdle)
	countdown.options.Recorder.IncIntent(string(KindCountdown), intent, true)
}

func (countdown *Countdown) armLocked() {
	countdown.disarmLocked()
	countdown.handle = countdown.options.Ticker.Arm(countdown.interval, countdown.tick)
}

func (countdown *Countdown) disarmLocked() {
	if countdown.handle == 0 {
		return
	}
	countdown.options.Ticker.Disarm(countdown.handle)
	countdown.handle = 0
}

func (countdown *Countdown) transitionLocked(next State) {
	previous := countdown.state
	if previous == next {
		return
	}
	countdown.state = next
	countdown.options.Recorder.IncTransition(string(KindCountdown), string(previous), string(next))
	countdown.options.Logger.Debug("countdown state change",
		"from", previous,
		"to", next,
		"remaining", countdown.remaining,
	)
	countdown.emitLocked(EventStateChange)
}

func (countdown *Countdown) ignoredLocked(intent string) {
	countdown.options.Recorder.IncIntent(string(KindCountdown), intent, false)
	countdown.options.Logger.Debug("countdown intent ignored", "intent", intent, "state", countdown.state)
}

func (countdown *Countdown) targetLocked() int {
	return countdown.minutes*60 + countdown.seconds
}

func (countdown *Countdown) emitLocked(eventType EventType) {
	countdown.observers.emitLocked(Event{
		Type:             eventType,
		Kind:             KindCountdown,
		State:            countdown.state,
		RemainingSeconds: countdown.remaining,
		TargetSeconds:    countdown.targetLocked(),
		At:               countdown.options.Clock.Now(),
	})
}

func clampField(value int) int {
	if value < minField {
		return minField
	}
	if value > maxField {
		return maxField
	}
	return value
}
