package timekeeper

// observers fans events out to subscriber channels. Callers hold the owning
// engine's lock.
type observers struct {
	channels []chan Event
	closed   bool
}

func (set *observers) subscribeLocked(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	if set.closed {
		close(ch)
		return ch
	}
	set.channels = append(set.channels, ch)
	return ch
}

// emitLocked never blocks: a subscriber that is not keeping up misses events
// and re-reads the snapshot instead.
func (set *observers) emitLocked(event Event) {
	for _, ch := range set.channels {
		select {
		case ch <- event:
		default:
		}
	}
}

func (set *observers) closeLocked() {
	if set.closed {
		return
	}
	set.closed = true
	for _, ch := range set.channels {
		close(ch)
	}
	set.channels = nil
}
