package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rewear_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SwipesTotal counts swipe decisions by direction.
	SwipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_swipes_total",
		Help: "Total number of swipe decisions by direction",
	}, []string{"direction"})

	// SwapRequestsTotal counts swap requests by outcome status.
	SwapRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_swap_requests_total",
		Help: "Total number of swap requests created or resolved by status",
	}, []string{"status"})

	// ModerationDecisionsTotal counts moderation outcomes by entity and decision.
	ModerationDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_moderation_decisions_total",
		Help: "Total number of moderation decisions",
	}, []string{"entity", "decision"})

	// CacheLookups counts cache-aside lookups by cache name and result.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_cache_lookups_total",
		Help: "Cache lookups by cache and result (hit, miss)",
	}, []string{"cache", "result"})

	// AdminStreamConnections is the gauge of open admin event streams.
	AdminStreamConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rewear_admin_stream_connections",
		Help: "Number of open admin moderation websocket streams",
	})

	// AdminStreamDrops counts events dropped for slow admin stream clients.
	AdminStreamDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_admin_stream_drops_total",
		Help: "Total number of admin stream events dropped due to backpressure",
	})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
