// Package metrics defines the Prometheus collectors for the screen time
// service, grouped by subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Session Tracking Metrics
var (
	// SessionsStarted tracks session starts by outcome (started/conflict/error)
	SessionsStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_sessions_started_total",
			Help: "Total session start attempts by outcome",
		},
		[]string{"outcome"},
	)

	// SessionsStopped tracks session stops by outcome (stopped/not_found/error)
	SessionsStopped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_sessions_stopped_total",
			Help: "Total session stop attempts by outcome",
		},
		[]string{"outcome"},
	)

	// SessionDuration observes recorded durations of closed sessions in seconds
	SessionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screentime_session_duration_seconds",
			Help:    "Recorded durations of closed sessions in seconds",
			Buckets: []float64{10, 60, 300, 900, 1800, 3600, 7200, 14400, 28800},
		},
	)
)

// Limit Evaluation Metrics
var (
	// LimitChecks tracks limit evaluations by result (exceeded/within/no_limit/no_category)
	LimitChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screentime_limit_checks_total",
			Help: "Total limit evaluations by result",
		},
		[]string{"result"},
	)

	// LimitsConfigured tracks limit upserts
	LimitsConfigured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "screentime_limits_configured_total",
			Help: "Total limit create/update operations",
		},
	)
)

// Category Cache Metrics
var (
	// CategoryCacheRedisHits tracks app category lookups served from Redis
	CategoryCacheRedisHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "category_cache_redis_hits_total",
			Help: "App category lookups served from the Redis cache",
		},
	)

	// CategoryCachePostgresHits tracks app category lookups that fell through to PostgreSQL
	CategoryCachePostgresHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "category_cache_postgres_hits_total",
			Help: "App category lookups that fell through to PostgreSQL",
		},
	)
)

// Redis Operations Metrics
var (
	// RedisOpsTotal tracks total Redis operations by operation type and status
	RedisOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_operations_total",
			Help: "Total Redis operations by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RedisOpDuration tracks Redis operation latency in seconds
	RedisOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// RedisConnectionErrors tracks failed Redis connection attempts
	RedisConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "redis_connection_errors_total",
			Help: "Total failed Redis connection attempts",
		},
	)

	// CircuitBreakerStateChanges tracks circuit breaker state transitions
	CircuitBreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_changes_total",
			Help: "Circuit breaker state transitions by component and new state",
		},
		[]string{"component", "state"},
	)

	// CircuitBreakerState tracks current circuit breaker state (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"component"},
	)
)

// HTTP Metrics
var (
	// RequestsRejected tracks requests rejected by connection or rate limits
	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_rejected_total",
			Help: "Requests rejected before handling, by reason",
		},
		[]string{"reason"},
	)
)
