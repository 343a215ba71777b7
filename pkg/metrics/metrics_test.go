package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry(), "test")

	m.AddAvailabilitiesGenerated(4)
	m.AddAvailabilitiesGenerated(0)
	m.IncAppointmentsBooked()
	m.IncBookingFailure("overlap")
	m.IncBookingFailure("overlap")
	m.ObserveHTTPRequest("POST", "/api/v1/appointments", "201", 10*time.Millisecond)
	m.ObserveDBQuery("query", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.AvailabilitiesGenerated.WithLabelValues()))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AppointmentsBooked.WithLabelValues()))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingFailures.WithLabelValues("overlap")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/v1/appointments", "201")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.AddAvailabilitiesGenerated(3)
		m.AddTimeSlotsProcessed(1)
		m.IncAppointmentsBooked()
		m.IncBookingFailure("not_found")
		m.ObserveHTTPRequest("GET", "/", "200", time.Second)
		m.ObserveDBQuery("exec", nil, time.Second)
		m.SetDBPoolStats(1, 1, 0, 0)
	})
}
