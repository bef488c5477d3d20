package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveAvailability("slots", "ok")
	m.ObserveAvailability("slots", "ok")
	m.ObserveAvailability("slots", "unavailable")
	m.ObserveBooking("create", "slot_taken")
	m.ObserveSlotsOffered(6)
	m.ObserveRequest("/api/v1/health", "GET", "200", 0.01)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.availabilityTotal.WithLabelValues("slots", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.availabilityTotal.WithLabelValues("slots", "unavailable")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.bookingTotal.WithLabelValues("create", "slot_taken")))
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveAvailability("days", "ok")
	m.ObserveBooking("create", "created")
	m.ObserveSlotsOffered(3)
	m.ObserveRequest("/", "GET", "200", 0.1)
}
