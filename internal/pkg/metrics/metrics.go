package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring delivery lifecycle health
var (
	BookingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deliveries_booked_total",
			Help: "Total number of deliveries booked",
		},
	)

	AdvisorFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slot_advisor_fallbacks_total",
			Help: "Total number of bookings that proceeded without a slot recommendation",
		},
	)

	VerificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "delivery_verifications_total",
			Help: "Total number of verification attempts by outcome",
		},
		[]string{"outcome"},
	)

	NotificationsDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of outbox notifications dispatched by outcome",
		},
		[]string{"outcome"},
	)

	BookingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_booking_duration_seconds",
			Help:    "Duration of booking requests",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(
		BookingsTotal,
		AdvisorFallbacksTotal,
		VerificationsTotal,
		NotificationsDispatchedTotal,
		BookingDuration,
	)
}
