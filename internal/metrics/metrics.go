package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation pipeline
	CollectorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_collector_duration_seconds",
			Help:    "Duration of candidate collector calls in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"collector"},
	)

	CollectorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_collector_failures_total",
			Help: "Collector calls that degraded to an empty result",
		},
		[]string{"collector", "reason"}, // reason: error, panic, timeout
	)

	CollectorCandidates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_collector_candidates_total",
			Help: "Candidates produced per collector",
		},
		[]string{"collector"},
	)

	RecommendationCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Ranking requests served from the semester/department cache",
		},
	)

	RecommendationCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Ranking requests that ran the full pipeline",
		},
	)

	// API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// External clients
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by outcome",
		},
		[]string{"name", "result"}, // result: success, failure, rejected
	)
)
