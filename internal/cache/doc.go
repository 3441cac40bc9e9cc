// Package cache implements the Redis read-through cache for app-to-category
// lookups. Redis is optional and advisory: every read falls through to
// PostgreSQL on a miss or error, and a circuit breaker sheds Redis traffic
// entirely when the instance is unhealthy.
package cache
