package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for identifier checks.
type Metrics struct {
	ChecksTotal   *prometheus.CounterVec
	BatchesTotal  prometheus.Counter
	BatchDuration prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checks_total",
			Help:      "Total number of identifier checks by kind and outcome",
		}, []string{"kind", "outcome"}),
		BatchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Total number of batch runs",
		}),
		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Wall time of batch runs",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// RecordCheck counts one check. outcome is "valid" or the rejection reason.
func (m *Metrics) RecordCheck(kind, outcome string) {
	m.ChecksTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordBatch counts one batch run and its duration in seconds.
func (m *Metrics) RecordBatch(seconds float64) {
	m.BatchesTotal.Inc()
	m.BatchDuration.Observe(seconds)
}
