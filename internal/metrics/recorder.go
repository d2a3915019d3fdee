// Package metrics exposes counters for engine activity. Engines default to
// NoopRecorder; the CLI swaps in a PrometheusRecorder when --metrics-addr is set.
package metrics

// Recorder receives engine activity. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncTransition(engine, from, to string)
	IncTick(engine string)
	IncLap()
	IncFinished()
	IncIntent(engine, intent string, applied bool)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) IncTransition(string, string, string) {}
func (NoopRecorder) IncTick(string) {}
func (NoopRecorder) IncLap() {}
func (NoopRecorder) IncFinished() {}
func (NoopRecorder) IncIntent(string, string, bool) {}
