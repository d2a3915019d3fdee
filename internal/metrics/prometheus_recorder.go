package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus counters.
type PrometheusRecorder struct {
	transitions *prom.CounterVec
	ticks       *prom.CounterVec
	intents     *prom.CounterVec
	laps        prom.Counter
	finished    prom.Counter
}

// NewPrometheusRecorder constructs the counters and registers them on reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	recorder := &PrometheusRecorder{
		transitions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "timekeeper",
			Name:      "state_transitions_total",
			Help:      "Run state transitions by engine",
		}, []string{"engine", "from", "to"}),
		ticks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "timekeeper",
			Name:      "ticks_total",
			Help:      "Ticks applied by engine",
		}, []string{"engine"}),
		intents: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "timekeeper",
			Name:      "intents_total",
			Help:      "User intents by engine and whether they changed state",
		}, []string{"engine", "intent", "applied"}),
		laps: prom.NewCounter(prom.CounterOpts{
			Namespace: "timekeeper",
			Name:      "laps_total",
			Help:      "Laps recorded by the stopwatch",
		}),
		finished: prom.NewCounter(prom.CounterOpts{
			Namespace: "timekeeper",
			Name:      "countdowns_finished_total",
			Help:      "Countdowns that ran down to zero",
		}),
	}
	reg.MustRegister(recorder.transitions, recorder.ticks, recorder.intents, recorder.laps, recorder.finished)
	return recorder
}

func (recorder *PrometheusRecorder) IncTransition(engine, from, to string) {
	recorder.transitions.WithLabelValues(engine, from, to).Inc()
}

func (recorder *PrometheusRecorder) IncTick(engine string) {
	recorder.ticks.WithLabelValues(engine).Inc()
}

func (recorder *PrometheusRecorder) IncLap() {
	recorder.laps.Inc()
}

func (recorder *PrometheusRecorder) IncFinished() {
	recorder.finished.Inc()
}

func (recorder *PrometheusRecorder) IncIntent(engine, intent string, applied bool) {
	recorder.intents.WithLabelValues(engine, intent, strconv.FormatBool(applied)).Inc()
}

// HTTPHandler serves the metrics registered on reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
