package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsByStatusClass(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("POST", "/api/v1/sales", 201, 25*time.Millisecond)
	m.Observe("POST", "/api/v1/sales", 400, 5*time.Millisecond)
	m.Observe("POST", "/api/v1/sales", 400, 5*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/sales", "2xx")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/sales", "4xx")))
}

func TestObserveOnNoopCollectorDoesNotPanic(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/health/live", 200, time.Millisecond)

	m = NewHTTPMetrics(nil)
	m.Observe("GET", "", 200, time.Millisecond)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(204))
	assert.Equal(t, "3xx", statusClass(302))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(503))
}
