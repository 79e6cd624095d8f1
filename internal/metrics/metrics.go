// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_http_requests_total",
			Help: "Total number of HTTP responses sent, by status code",
		},
		[]string{"method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelfwise_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// Cache
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_cache_hits_total",
			Help: "Total number of cache hits, by key prefix",
		},
		[]string{"prefix"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_cache_misses_total",
			Help: "Total number of cache misses, by key prefix",
		},
		[]string{"prefix"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_cache_evictions_total",
			Help: "Total number of cache entries removed, by reason",
		},
		[]string{"reason"},
	)

	// Activity recorder
	ActivitiesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_activities_recorded_total",
			Help: "Total number of activity records persisted, by activity type",
		},
		[]string{"type"},
	)

	ActivitiesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_activities_dropped_total",
			Help: "Total number of activity records lost, by reason",
		},
		[]string{"reason"},
	)

	ActivityQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shelfwise_activity_queue_depth",
			Help: "Number of activity records waiting to be persisted",
		},
	)

	// Degraded reads
	DegradedReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelfwise_degraded_reads_total",
			Help: "Total number of read operations answered with an empty fallback after a storage error",
		},
		[]string{"operation"},
	)
)

// Drop reasons for ActivitiesDropped.
const (
	DropQueueFull   = "queue_full"
	DropStoreError  = "store_error"
	DropBreakerOpen = "breaker_open"
	DropInvalid     = "invalid"
)
