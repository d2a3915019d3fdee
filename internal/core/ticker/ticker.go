package ticker

import "time"

// Handle identifies one armed tick source. The zero Handle is never armed.
type Handle uint64

// Ticker delivers periodic callbacks while armed.
type Ticker interface {
	// Arm begins invoking onTick every period until the returned handle is disarmed.
	Arm(period time.Duration, onTick func(Handle)) Handle
	// Disarm stops further invocations. Unknown or already disarmed handles are ignored.
	Disarm(handle Handle)
}

// Dispatcher runs fn on the host's event loop.
type Dispatcher func(fn func())

// Direct runs fn on the calling goroutine.
func Direct(fn func()) {
	fn()
}
