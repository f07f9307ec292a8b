// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeboard_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// PublishesTotal counts successful publishes, labeled by whether the post
	// carried an image.
	PublishesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeboard_publishes_total",
		Help: "Total number of published posts",
	}, []string{"with_image"})

	// ReactionsTotal counts applied reaction transitions (like, dislike, clear, switch).
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeboard_reactions_total",
		Help: "Total number of applied reaction transitions",
	}, []string{"transition"})

	// FeedPagesTotal counts served feed pages by sort mode.
	FeedPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "memeboard_feed_pages_total",
		Help: "Total number of feed pages served by sort mode",
	}, []string{"sort"})

	// OrphanedImagesTotal counts stored images left behind when post deletion
	// succeeded but image removal failed.
	OrphanedImagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "memeboard_orphaned_images_total",
		Help: "Total number of images orphaned by failed cleanup after post deletion",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "memeboard_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
