package timekeeper

import (
	"log/slog"

	"timekeeper/internal/core/ticker"
	"timekeeper/internal/metrics"

	"github.com/jonboulle/clockwork"
)

// Engine is the intent surface shared by Countdown and Stopwatch.
type Engine interface {
	Kind() Kind
	Start()
	Pause()
	Reset()
	Deactivate()
	Running() bool
	Display() string
	Subscribe(buffer int) <-chan Event
}

// Options carries the collaborators injected into an engine.
type Options struct {
	Ticker   ticker.Ticker
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Recorder metrics.Recorder
}

func (options Options) withDefaults() Options {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Ticker == nil {
		options.Ticker = ticker.NewClock(options.Clock, ticker.Direct)
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.Recorder == nil {
		options.Recorder = metrics.NoopRecorder{}
	}
	return options
}

var (
	_ Engine = (*Countdown)(nil)
	_ Engine = (*Stopwatch)(nil)
)
