package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by status.",
		},
		[]string{"status"},
	)

	bookingCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "booking_cancelled_total",
			Help:      "Count of bookings cancelled by users.",
		},
	)

	bookingRescheduled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "booking_rescheduled_total",
			Help:      "Count of bookings rescheduled or extended.",
		},
	)

	bookingConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "booking_conflict_total",
			Help:      "Count of booking attempts rejected for slot conflicts.",
		},
	)

	checkinOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "checkin_ops_total",
			Help:      "Count of occupancy operations by kind and result.",
		},
		[]string{"op", "result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "deskhive",
			Name:      "http_requests_total",
			Help:      "Count of HTTP API requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated, bookingCancelled, bookingRescheduled,
			bookingConflicts, checkinOps, httpRequests,
		)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingCancelled() {
	bookingCancelled.Inc()
}

func IncBookingRescheduled() {
	bookingRescheduled.Inc()
}

func IncBookingConflict() {
	bookingConflicts.Inc()
}

func IncCheckinOp(op, result string) {
	checkinOps.WithLabelValues(op, result).Inc()
}

func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}
