// Package observability holds the prometheus collectors and OpenTelemetry setup
// shared by the server, cache, and ranking packages.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusforum_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// CacheLookups counts cache-aside lookups by key family and result (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusforum_cache_lookups_total",
		Help: "Cache-aside lookups by key family and result",
	}, []string{"family", "result"})

	// RankingFetches counts league-table fetches by outcome status.
	RankingFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusforum_ranking_fetches_total",
		Help: "University ranking fetches by outcome",
	}, []string{"status"})

	// RankingFetchLatency records the upstream fetch duration.
	RankingFetchLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campusforum_ranking_fetch_seconds",
		Help:    "Upstream league-table fetch latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campusforum_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ForumWrites counts created users, posts, comments and replies.
	ForumWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campusforum_writes_total",
		Help: "Records created by kind",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// RecordWrite increments the write counter for kind.
func RecordWrite(kind string) {
	ForumWrites.WithLabelValues(kind).Inc()
}
