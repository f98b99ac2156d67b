package kafka_middleware

import (
	"context"
	"sync"
	"time"

	"courtbook/pkg/kafka"

	"github.com/prometheus/client_golang/prometheus"
)

type producerMetrics struct {
	published *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

var (
	producerMetricsOnce sync.Once
	producerRegistry    *producerMetrics
)

func defaultProducerMetrics() *producerMetrics {
	producerMetricsOnce.Do(func() {
		producerRegistry = &producerMetrics{
			published: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "courtbook",
				Subsystem: "kafka",
				Name:      "messages_published_total",
				Help:      "Messages handed to the broker by topic and outcome.",
			}, []string{"topic", "outcome"}),
			duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "courtbook",
				Subsystem: "kafka",
				Name:      "publish_duration_seconds",
				Help:      "Time spent publishing a message.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"topic"}),
		}
		prometheus.MustRegister(producerRegistry.published, producerRegistry.duration)
	})
	return producerRegistry
}

// MetricsProducerMiddleware counts publishes and their latency.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	metrics := defaultProducerMetrics()
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)

		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		metrics.published.WithLabelValues(msg.Topic, outcome).Inc()
		metrics.duration.WithLabelValues(msg.Topic).Observe(time.Since(start).Seconds())
		return err
	}
}
