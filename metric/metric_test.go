package metric

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveLoad(t *testing.T) {
	m := New()

	m.ObserveLoad("no_error", 5*time.Millisecond)
	m.ObserveLoad("no_error", 7*time.Millisecond)
	m.ObserveLoad("malformed_file", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoadsTotal.WithLabelValues("no_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoadsTotal.WithLabelValues("malformed_file")))
}

func TestMetrics_ObserveSaveAndPanic(t *testing.T) {
	m := New()

	m.ObserveSave("writing", 3*time.Millisecond)
	m.ObservePanic()
	m.ObservePanic()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SavesTotal.WithLabelValues("writing")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PanicsRecovered))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveLoad("no_error", time.Millisecond)
		m.ObserveSave("no_error", time.Millisecond)
		m.ObservePanic()
	})
}

func TestMetrics_IsolatedRegistries(t *testing.T) {
	a := New()
	b := New()
	a.ObserveLoad("no_error", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.LoadsTotal.WithLabelValues("no_error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LoadsTotal.WithLabelValues("no_error")))
}
