package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for recipient preference mutations.
// All methods are safe on a nil receiver.
type Metrics struct {
	// Mutations accepted by the coordinator, by field
	Mutations *prometheus.CounterVec

	// Rejected intents
	ValidationFailures prometheus.Counter

	// Failed durable write attempts by lane ("serial", "pooled")
	PersistFailures *prometheus.CounterVec

	// Duration of a durable write including retries, by lane
	PersistDuration *prometheus.HistogramVec

	// Pending pooled writes superseded by a newer submission
	Coalesced prometheus.Counter

	// Propagation jobs accepted and dropped by the queue
	PropagationEnqueued prometheus.Counter
	PropagationDropped  prometheus.Counter

	// Consistency repairs by kind ("created", "deleted", "adopted")
	Repairs *prometheus.CounterVec
}

// New registers the recipient metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the recipient metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prefsync_mutations_total",
			Help: "Total recipient mutations committed by field",
		}, []string{"field"}),

		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "prefsync_validation_failures_total",
			Help: "Total mutation intents rejected by validation",
		}),

		PersistFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prefsync_persist_failures_total",
			Help: "Total failed durable write attempts by lane",
		}, []string{"lane"}),

		PersistDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "prefsync_persist_duration_seconds",
			Help:    "Duration of durable writes including retries by lane",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"lane"}),

		Coalesced: factory.NewCounter(prometheus.CounterOpts{
			Name: "prefsync_pooled_coalesced_total",
			Help: "Total pending pooled writes superseded before they ran",
		}),

		PropagationEnqueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "prefsync_propagation_enqueued_total",
			Help: "Total propagation jobs accepted by the queue",
		}),

		PropagationDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "prefsync_propagation_dropped_total",
			Help: "Total propagation jobs dropped by the queue",
		}),

		Repairs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "prefsync_repairs_total",
			Help: "Total store/adapter inconsistencies repaired by kind",
		}, []string{"kind"}),
	}
}

// IncrementMutation records a committed mutation on field.
func (m *Metrics) IncrementMutation(field string) {
	if m != nil {
		m.Mutations.WithLabelValues(field).Inc()
	}
}

// IncrementValidationFailure records a rejected intent.
func (m *Metrics) IncrementValidationFailure() {
	if m != nil {
		m.ValidationFailures.Inc()
	}
}

// IncrementPersistFailure records one failed write attempt on lane.
func (m *Metrics) IncrementPersistFailure(lane string) {
	if m != nil {
		m.PersistFailures.WithLabelValues(lane).Inc()
	}
}

// ObservePersist records the duration of a durable write started at start.
func (m *Metrics) ObservePersist(lane string, start time.Time) {
	if m != nil {
		m.PersistDuration.WithLabelValues(lane).Observe(time.Since(start).Seconds())
	}
}

// IncrementCoalesced records a superseded pooled write.
func (m *Metrics) IncrementCoalesced() {
	if m != nil {
		m.Coalesced.Inc()
	}
}

// IncrementPropagationEnqueued records an accepted propagation job.
func (m *Metrics) IncrementPropagationEnqueued() {
	if m != nil {
		m.PropagationEnqueued.Inc()
	}
}

// IncrementPropagationDropped records a dropped propagation job.
func (m *Metrics) IncrementPropagationDropped() {
	if m != nil {
		m.PropagationDropped.Inc()
	}
}

// IncrementRepair records a repaired inconsistency of the given kind.
func (m *Metrics) IncrementRepair(kind string) {
	if m != nil {
		m.Repairs.WithLabelValues(kind).Inc()
	}
}
