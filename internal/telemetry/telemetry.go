package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome labels recorded against the knowledge-base store.
const (
	FetchOK    = "ok"
	FetchEmpty = "empty"
	FetchError = "error"
)

// Telemetry exposes the prometheus instruments for the answering pipeline.
// A nil *Telemetry is valid and records nothing, so tests and the one-shot
// CLI can skip metric wiring entirely.
type Telemetry struct {
	queries        *prometheus.CounterVec
	kbFetches      *prometheus.CounterVec
	streamFailures prometheus.Counter
	answerSeconds  prometheus.Histogram
}

// New registers the service metrics on the given registerer.
func New(reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quanda_queries_total",
			Help: "Queries handled, labelled by capability decision",
		}, []string{"decision"}),
		kbFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quanda_kb_fetch_total",
			Help: "Knowledge-base bulk fetches, labelled by outcome",
		}, []string{"outcome"}),
		streamFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quanda_stream_failures_total",
			Help: "Completion streams that ended in a provider error",
		}),
		answerSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quanda_answer_duration_seconds",
			Help:    "End-to-end time to assemble a response",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(t.queries, t.kbFetches, t.streamFailures, t.answerSeconds)
	return t
}

func (t *Telemetry) RecordQuery(decision string) {
	if t == nil {
		return
	}
	t.queries.WithLabelValues(decision).Inc()
}

func (t *Telemetry) RecordFetch(outcome string) {
	if t == nil {
		return
	}
	t.kbFetches.WithLabelValues(outcome).Inc()
}

func (t *Telemetry) RecordStreamFailure() {
	if t == nil {
		return
	}
	t.streamFailures.Inc()
}

func (t *Telemetry) ObserveAnswerDuration(d time.Duration) {
	if t == nil {
		return
	}
	t.answerSeconds.Observe(d.Seconds())
}
