package timekeeper

import (
	"log/slog"
	"sync"

	"timekeeper/internal/core/model"

	"github.com/google/uuid"
)

// Tab identifies which engine the host is showing.
type Tab string

const (
	TabTimer     Tab = "timer"
	TabStopwatch Tab = "stopwatch"
)

// Session owns one countdown and one stopwatch for the lifetime of a host
// window. Only the engine of the active tab keeps ticking across tab switches.
type Session struct {
	mu        sync.Mutex
	id        string
	logger    *slog.Logger
	countdown *Countdown
	stopwatch *Stopwatch
	active    Tab
	closed    bool
}

// NewSession creates both engines with the timer tab active. Both engines
// share options; a shared Ticker hands each engine its own handle.
func NewSession(config model.TimeKeeperConfig, options Options) *Session {
	options = options.withDefaults()
	id := uuid.NewString()
	options.Logger = options.Logger.With("session", id)

	return &Session{
		id:        id,
		logger:    options.Logger,
		countdown: NewCountdown(config.Countdown, options),
		stopwatch: NewStopwatch(config.Stopwatch, options),
		active:    TabTimer,
	}
}

// ID returns the session identifier attached to log lines.
func (session *Session) ID() string {
	return session.id
}

// Countdown returns the countdown engine.
func (session *Session) Countdown() *Countdown {
	return session.countdown
}

// Stopwatch returns the stopwatch engine.
func (session *Session) Stopwatch() *Stopwatch {
	return session.stopwatch
}

// Engine returns the engine shown on tab, or nil for an unknown tab.
func (session *Session) Engine(tab Tab) Engine {
	switch tab {
	case TabTimer:
		return session.countdown
	case TabStopwatch:
		return session.stopwatch
	default:
		return nil
	}
}

// ActiveTab returns the tab currently shown.
func (session *Session) ActiveTab() Tab {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.active
}

// Active returns the engine of the active tab.
func (session *Session) Active() Engine {
	return session.Engine(session.ActiveTab())
}

// Activate switches to tab and deactivates the engine that lost focus.
// Accumulated values are kept; only ticking stops.
func (session *Session) Activate(tab Tab) {
	if session.Engine(tab) == nil {
		return
	}

	session.mu.Lock()
	if session.closed || session.active == tab {
		session.mu.Unlock()
		return
	}
	previous := session.active
	session.active = tab
	session.mu.Unlock()

	session.logger.Debug("tab activated", "tab", tab, "previous", previous)
	session.Engine(previous).Deactivate()
}

// Deactivate halts both engines, e.g. when the host window is hidden.
func (session *Session) Deactivate() {
	session.countdown.Deactivate()
	session.stopwatch.Deactivate()
}

// Reconfigure hands a new default target to the countdown. See
// Countdown.Retarget for when the remaining time follows it.
func (session *Session) Reconfigure(config model.TimeKeeperConfig) {
	session.countdown.Retarget(config.Countdown.Minutes, config.Countdown.Seconds)
}

// Close disarms both engines and closes their observer channels.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.mu.Unlock()

	session.countdown.Close()
	session.stopwatch.Close()
	session.logger.Debug("session closed")
}
