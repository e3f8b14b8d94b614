// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebuds_api_requests_total",
			Help: "Total number of API requests by operation and status code",
		},
		[]string{"operation", "status"},
	)

	APIRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebuds_api_request_errors_total",
			Help: "Total number of failed API requests by operation and error kind",
		},
		[]string{"operation", "kind"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tastebuds_api_request_duration_seconds",
			Help: "Duration of API requests in seconds",
		},
		[]string{"operation"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebuds_cache_hits_total",
			Help: "Total number of CLI cache hits",
		},
		[]string{"resource"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tastebuds_cache_misses_total",
			Help: "Total number of CLI cache misses",
		},
		[]string{"resource"},
	)
)
