package ticker

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultPeriod is used when Arm is called with a non-positive period.
const DefaultPeriod = time.Second

// Clock is a Ticker backed by a clockwork clock. Every armed handle runs its
// own goroutine; ticks are handed to the dispatcher in delivery order.
type Clock struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	dispatch Dispatcher
	next     Handle
	armed    map[Handle]chan struct{}
}

// NewClock creates a Ticker driven by clock. A nil clock uses the real clock
// and a nil dispatcher runs callbacks directly on the tick goroutine.
func NewClock(clock clockwork.Clock, dispatch Dispatcher) *Clock {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if dispatch == nil {
		dispatch = Direct
	}
	return &Clock{
		clock:    clock,
		dispatch: dispatch,
		armed:    make(map[Handle]chan struct{}),
	}
}

// Arm starts a periodic tick source.
func (ticker *Clock) Arm(period time.Duration, onTick func(Handle)) Handle {
	if period <= 0 {
		period = DefaultPeriod
	}

	ticker.mu.Lock()
	ticker.next++
	handle := ticker.next
	stopCh := make(chan struct{})
	ticker.armed[handle] = stopCh
	source := ticker.clock.NewTicker(period)
	ticker.mu.Unlock()

	go ticker.run(handle, source, stopCh, onTick)
	return handle
}

// Disarm stops the tick source identified by handle.
func (ticker *Clock) Disarm(handle Handle) {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	stopCh, ok := ticker.armed[handle]
	if !ok {
		return
	}
	delete(ticker.armed, handle)
	close(stopCh)
}

// Active reports how many handles are currently armed.
func (ticker *Clock) Active() int {
	ticker.mu.Lock()
	defer ticker.mu.Unlock()
	return len(ticker.armed)
}

func (ticker *Clock) run(handle Handle, source clockwork.Ticker, stopCh chan struct{}, onTick func(Handle)) {
	defer source.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-source.Chan():
			// A tick racing with Disarm may still be dispatched; receivers
			// compare the handle against the one they currently hold.
			select {
			case <-stopCh:
				return
			default:
			}
			ticker.dispatch(func() {
				onTick(handle)
			})
		}
	}
}
