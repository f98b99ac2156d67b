package service

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeConfirmed = "confirmed"
	outcomeConflict  = "conflict"
	outcomeNotFound  = "not_found"
	outcomeInvalid   = "invalid"
	outcomeError     = "error"
)

type reservationMetrics struct {
	reservations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
}

var (
	reservationMetricsOnce sync.Once
	reservationRegistry    *reservationMetrics
)

func defaultReservationMetrics() *reservationMetrics {
	reservationMetricsOnce.Do(func() {
		reservationRegistry = &reservationMetrics{
			reservations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "courtbook",
				Name:      "reservations_total",
				Help:      "Reservation attempts by strategy and outcome.",
			}, []string{"strategy", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "courtbook",
				Name:      "reservation_duration_seconds",
				Help:      "Time spent serving a reservation attempt.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"strategy"}),
		}
		prometheus.MustRegister(
			reservationRegistry.reservations,
			reservationRegistry.duration,
		)
	})
	return reservationRegistry
}

func (m *reservationMetrics) observe(strategy Strategy, outcome string, elapsed time.Duration) {
	m.reservations.WithLabelValues(strategy.String(), outcome).Inc()
	m.duration.WithLabelValues(strategy.String()).Observe(elapsed.Seconds())
}
