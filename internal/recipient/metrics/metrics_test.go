package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementMutation("color")
		m.IncrementValidationFailure()
		m.IncrementPersistFailure("serial")
		m.ObservePersist("pooled", time.Now())
		m.IncrementCoalesced()
		m.IncrementPropagationEnqueued()
		m.IncrementPropagationDropped()
		m.IncrementRepair("created")
	})
}

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementMutation("color")
	m.IncrementMutation("color")
	m.IncrementPersistFailure("serial")
	m.IncrementRepair("deleted")
	m.IncrementPropagationEnqueued()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Mutations.WithLabelValues("color")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PersistFailures.WithLabelValues("serial")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PersistFailures.WithLabelValues("pooled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Repairs.WithLabelValues("deleted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PropagationEnqueued))
}
