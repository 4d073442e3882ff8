// Package metrics exposes Prometheus instrumentation for evidence
// distribution runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors for the distribution engine.
type Metrics struct {
	lettersPrinted      *prometheus.CounterVec
	adjustmentsRecorded prometheus.Counter
	sendsSuppressed     prometheus.Counter
	runsCompleted       *prometheus.CounterVec
	runDuration         prometheus.Histogram
}

// New registers the distribution collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		lettersPrinted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evidence_share",
			Name:      "letters_printed_total",
			Help:      "Letters handed to the bulk print provider, by recipient.",
		}, []string{"letter_type"}),
		adjustmentsRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "evidence_share",
			Name:      "letters_withheld_total",
			Help:      "Letters withheld for a reasonable adjustment.",
		}),
		sendsSuppressed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "evidence_share",
			Name:      "letters_suppressed_total",
			Help:      "Letters not sent because bulk print dispatch is disabled.",
		}),
		runsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "evidence_share",
			Name:      "distribution_runs_total",
			Help:      "Distribution runs by terminal state.",
		}, []string{"state"}),
		runDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "evidence_share",
			Name:      "distribution_run_duration_seconds",
			Help:      "Wall-clock duration of a distribution run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// LetterPrinted records one letter dispatched to the print provider.
func (m *Metrics) LetterPrinted(letterType string) {
	m.lettersPrinted.WithLabelValues(letterType).Inc()
}

// AdjustmentRecorded records one letter withheld for a reasonable
// adjustment.
func (m *Metrics) AdjustmentRecorded() {
	m.adjustmentsRecorded.Inc()
}

// SendSuppressed records one letter dropped because dispatch is disabled.
func (m *Metrics) SendSuppressed() {
	m.sendsSuppressed.Inc()
}

// RunFinished records a run reaching a terminal state.
func (m *Metrics) RunFinished(state string, started time.Time) {
	m.runsCompleted.WithLabelValues(state).Inc()
	m.runDuration.Observe(time.Since(started).Seconds())
}
