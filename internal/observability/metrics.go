// Package observability holds the Prometheus metrics and OpenTelemetry
// tracing surface of the service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sanaalens_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CommentStreamWatchers is the gauge of websocket watchers per post thread.
	CommentStreamWatchers = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "sanaalens_comment_stream_watchers",
		Help: "Number of websocket watchers per comment thread",
	}, []string{"post_id"})

	// CommentStreamConnectionsTotal is the gauge of all open stream connections.
	CommentStreamConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sanaalens_comment_stream_connections_total",
		Help: "Total number of active comment stream connections",
	})

	// ThreadBroadcastsTotal counts thread snapshot broadcasts.
	ThreadBroadcastsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sanaalens_thread_broadcasts_total",
		Help: "Total number of comment thread snapshots broadcast",
	})

	// StreamBackpressureDrops counts watchers dropped for not draining their buffer.
	StreamBackpressureDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sanaalens_stream_backpressure_drops_total",
		Help: "Total number of stream watchers dropped due to backpressure",
	})

	// ViewsRecordedTotal counts deduplicated post views.
	ViewsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sanaalens_views_recorded_total",
		Help: "Total number of first-time post views counted",
	})
)
