// Package observability holds the prometheus collectors exposed on /metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_http_requests_total",
		Help: "Total number of HTTP requests handled",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration records request latency by method and route template.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fitness_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// WorkoutMutations counts committed workout graph mutations by operation.
	WorkoutMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fitness_workout_mutations_total",
		Help: "Total number of committed workout mutations",
	}, []string{"operation"})

	// RateLimitedRequests counts requests rejected by the rate limiter.
	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fitness_rate_limited_requests_total",
		Help: "Total number of requests rejected by the rate limiter",
	})
)
