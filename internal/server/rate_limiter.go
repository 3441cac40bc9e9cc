package server

import (
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/Downforcedemon/MinimalHome/internal/config"
	"github.com/Downforcedemon/MinimalHome/internal/metrics"
)

// GlobalConnectionLimiter caps in-flight requests per instance.
// Uses atomic operations for lock-free counting.
type GlobalConnectionLimiter struct {
	current atomic.Int64
	max     int64
}

// NewGlobalConnectionLimiter creates a limiter with the specified maximum.
func NewGlobalConnectionLimiter(max int64) *GlobalConnectionLimiter {
	return &GlobalConnectionLimiter{max: max}
}

// Acquire attempts to acquire a slot. Returns false at capacity.
func (l *GlobalConnectionLimiter) Acquire() bool {
	for {
		current := l.current.Load()
		if current >= l.max {
			return false
		}
		if l.current.CompareAndSwap(current, current+1) {
			return true
		}
	}
}

// Release releases a slot.
func (l *GlobalConnectionLimiter) Release() {
	l.current.Add(-1)
}

// Current returns the number of in-flight requests.
func (l *GlobalConnectionLimiter) Current() int64 {
	return l.current.Load()
}

// ClientRateLimiter limits the request rate per client IP using a token
// bucket per IP. Idle buckets are dropped after ten minutes.
type ClientRateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*rateLimiterEntry
	rate      rate.Limit
	burst     int
	cleanupAt time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const limiterCleanupInterval = 5 * time.Minute

// NewClientRateLimiter creates a per-IP rate limiter with the given sustained
// requests per second and burst size.
func NewClientRateLimiter(requestsPerSecond float64, burst int) *ClientRateLimiter {
	return &ClientRateLimiter{
		limiters:  make(map[string]*rateLimiterEntry),
		rate:      rate.Limit(requestsPerSecond),
		burst:     burst,
		cleanupAt: time.Now().Add(limiterCleanupInterval),
	}
}

// Allow reports whether a request from the given IP fits the rate limit.
func (l *ClientRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Now().After(l.cleanupAt) {
		l.cleanup()
		l.cleanupAt = time.Now().Add(limiterCleanupInterval)
	}

	entry, exists := l.limiters[ip]
	if !exists {
		entry = &rateLimiterEntry{
			limiter: rate.NewLimiter(l.rate, l.burst),
		}
		l.limiters[ip] = entry
	}

	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

// cleanup removes limiters idle for ten minutes. Must be called with mu held.
func (l *ClientRateLimiter) cleanup() {
	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// ActiveLimiters returns the number of tracked client buckets.
func (l *ClientRateLimiter) ActiveLimiters() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// requestLimiter combines the global cap and the per-client rate limit into
// one Echo middleware. Health and metrics endpoints are exempt so probes
// keep working under load.
type requestLimiter struct {
	global *GlobalConnectionLimiter
	client *ClientRateLimiter
}

func newRequestLimiter(cfg *config.Config) *requestLimiter {
	return &requestLimiter{
		global: NewGlobalConnectionLimiter(cfg.MaxConnections),
		client: NewClientRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
	}
}

func (l *requestLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if path == "/metrics" || strings.HasPrefix(path, "/health/") {
				return next(c)
			}

			if !l.client.Allow(c.RealIP()) {
				metrics.RequestsRejected.WithLabelValues("rate_limit").Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}

			if !l.global.Acquire() {
				metrics.RequestsRejected.WithLabelValues("capacity").Inc()
				return c.JSON(http.StatusServiceUnavailable, map[string]string{
					"error": "server at capacity",
				})
			}
			defer l.global.Release()

			return next(c)
		}
	}
}
