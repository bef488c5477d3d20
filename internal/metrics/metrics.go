package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for availability lookups and booking writes.
type BookingMetrics struct {
	availabilityTotal *prometheus.CounterVec
	bookingTotal      *prometheus.CounterVec
	slotsOffered      prometheus.Histogram
	requestLatency    *prometheus.HistogramVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		availabilityTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthcare",
			Subsystem: "availability",
			Name:      "queries_total",
			Help:      "Total availability lookups",
		}, []string{"kind", "result"}),
		bookingTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthcare",
			Subsystem: "booking",
			Name:      "attempts_total",
			Help:      "Total appointment create and reschedule attempts",
		}, []string{"operation", "outcome"}),
		slotsOffered: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "healthcare",
			Subsystem: "availability",
			Name:      "slots_offered",
			Help:      "Free slots returned per slot lookup",
			Buckets:   prometheus.LinearBuckets(0, 2, 13),
		}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthcare",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests by route",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.availabilityTotal, m.bookingTotal, m.slotsOffered, m.requestLatency)
	return m
}

// ObserveAvailability records a "days" or "slots" lookup and its result
func (m *BookingMetrics) ObserveAvailability(kind, result string) {
	if m == nil {
		return
	}
	m.availabilityTotal.WithLabelValues(kind, result).Inc()
}

func (m *BookingMetrics) ObserveSlotsOffered(n int) {
	if m == nil {
		return
	}
	m.slotsOffered.Observe(float64(n))
}

// ObserveBooking records the outcome of a create or reschedule
func (m *BookingMetrics) ObserveBooking(operation, outcome string) {
	if m == nil {
		return
	}
	m.bookingTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *BookingMetrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requestLatency.WithLabelValues(route, method, status).Observe(seconds)
}
