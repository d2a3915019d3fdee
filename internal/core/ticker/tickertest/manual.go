// Package tickertest provides a synchronous Ticker for deterministic tests.
package tickertest

import (
	"sort"
	"sync"
	"time"

	"timekeeper/internal/core/ticker"
)

type armed struct {
	period time.Duration
	onTick func(ticker.Handle)
}

// Manual is a Ticker that only fires when Tick is called.
type Manual struct {
	mu         sync.Mutex
	next       ticker.Handle
	armed      map[ticker.Handle]armed
	armCalls   int
	lastPeriod time.Duration
}

// New creates an idle manual ticker.
func New() *Manual {
	return &Manual{armed: make(map[ticker.Handle]armed)}
}

// Arm registers onTick under a fresh handle.
func (manual *Manual) Arm(period time.Duration, onTick func(ticker.Handle)) ticker.Handle {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	manual.next++
	manual.armCalls++
	manual.lastPeriod = period
	manual.armed[manual.next] = armed{period: period, onTick: onTick}
	return manual.next
}

// Disarm forgets handle.
func (manual *Manual) Disarm(handle ticker.Handle) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	delete(manual.armed, handle)
}

// Tick delivers n ticks to every armed handle, in handle order. Handles
// disarmed by a callback receive no further ticks.
func (manual *Manual) Tick(n int) {
	for i := 0; i < n; i++ {
		for _, handle := range manual.handles() {
			manual.mu.Lock()
			entry, ok := manual.armed[handle]
			manual.mu.Unlock()
			if ok {
				entry.onTick(handle)
			}
		}
	}
}

// ArmedCount returns the number of armed handles.
func (manual *Manual) ArmedCount() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return len(manual.armed)
}

// ArmCalls returns how many times Arm has been called.
func (manual *Manual) ArmCalls() int {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.armCalls
}

// LastPeriod returns the period passed to the most recent Arm call.
func (manual *Manual) LastPeriod() time.Duration {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	return manual.lastPeriod
}

// Callback returns the onTick registered for handle.
func (manual *Manual) Callback(handle ticker.Handle) (func(ticker.Handle), bool) {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	entry, ok := manual.armed[handle]
	return entry.onTick, ok
}

// Handles returns the armed handles in ascending order.
func (manual *Manual) Handles() []ticker.Handle {
	return manual.handles()
}

func (manual *Manual) handles() []ticker.Handle {
	manual.mu.Lock()
	defer manual.mu.Unlock()
	handles := make([]ticker.Handle, 0, len(manual.armed))
	for handle := range manual.armed {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })
	return handles
}
