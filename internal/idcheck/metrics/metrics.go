package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for identity-number checks.
type Metrics struct {
	// Check outcomes by scheme and outcome (valid, invalid, unsupported)
	CheckOutcome *prometheus.CounterVec

	// Parse failures by reason
	ParseFailures *prometheus.CounterVec

	// Numbers per batch request
	BatchSize prometheus.Histogram

	// Latency by operation (parse, check, convert, batch)
	OperationLatency *prometheus.HistogramVec
}

// New creates Metrics registered with the default Prometheus registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates Metrics registered with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not collide.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_check_outcomes_total",
			Help: "Identity number checks by scheme and outcome",
		}, []string{"scheme", "outcome"}),

		ParseFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "idcheck_parse_failures_total",
			Help: "Failed 18-digit parses by reason",
		}, []string{"reason"}),

		BatchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "idcheck_batch_size",
			Help:    "Number of identity numbers per batch request",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),

		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idcheck_operation_duration_seconds",
			Help:    "Duration of identity number operations",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		}, []string{"operation"}),
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(scheme, outcome string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(scheme, outcome).Inc()
	}
}

// IncrementParseFailure records a failed parse.
func (m *Metrics) IncrementParseFailure(reason string) {
	if m != nil {
		m.ParseFailures.WithLabelValues(reason).Inc()
	}
}

// ObserveBatchSize records the size of a batch request.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}

// ObserveLatency records how long an operation took.
func (m *Metrics) ObserveLatency(operation string, d time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}
