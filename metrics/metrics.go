package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twinclash_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twinclash_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "twinclash_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method", "path"},
	)

	// RateLimiterRejections counts rejected requests due to rate limiting
	RateLimiterRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twinclash_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
		[]string{"ip"},
	)

	// DatabaseOperationDuration measures database operation duration
	DatabaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "twinclash_db_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// MemoryStats tracks memory usage stats
	MemoryStats = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "twinclash_memory_stats_bytes",
			Help: "Memory statistics in bytes",
		},
		[]string{"type"},
	)

	// GoroutineCount tracks the number of goroutines
	GoroutineCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "twinclash_goroutine_count",
			Help: "Number of goroutines",
		},
	)

	// DuelRoomsCreated counts successfully allocated duel rooms
	DuelRoomsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "twinclash_duel_rooms_created_total",
			Help: "Total number of duel rooms created",
		},
	)

	// DuelsFinished counts finished duels by outcome (host, guest, tie)
	DuelsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twinclash_duels_finished_total",
			Help: "Total number of finished duels by outcome",
		},
		[]string{"outcome"},
	)

	// RealtimeSubscribers tracks currently connected duel observers
	RealtimeSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "twinclash_realtime_subscribers",
			Help: "Number of connected realtime duel observers",
		},
	)

	// PaymentsCompleted counts checkout sessions settled and credited
	PaymentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "twinclash_payments_completed_total",
			Help: "Total number of completed coin purchases",
		},
	)

	// PushNotificationsSent counts push delivery attempts by provider and result
	PushNotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "twinclash_push_notifications_sent_total",
			Help: "Total number of push notifications sent by provider and result",
		},
		[]string{"provider", "result"},
	)
)

// RecordDBOperation records the duration of a database operation
func RecordDBOperation(operation string, table string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	DatabaseOperationDuration.WithLabelValues(operation, table).Observe(duration)
}
