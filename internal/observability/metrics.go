// Package observability holds metrics collectors and tracing setup.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stayhub_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// BookingsCreated counts bookings created since process start.
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stayhub_bookings_created_total",
		Help: "Total number of bookings created",
	})

	// BookingStatusChanges counts booking status writes by resulting status.
	BookingStatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stayhub_booking_status_changes_total",
		Help: "Total number of booking status changes by new status",
	}, []string{"status"})

	// WebSocketConnections is the gauge of active booking-event WebSocket connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "stayhub_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// ImagesProcessed counts uploaded images processed by outcome.
	ImagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stayhub_images_processed_total",
		Help: "Total number of property images processed by outcome",
	}, []string{"outcome"})
)
