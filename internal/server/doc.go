// Package server implements the Echo HTTP surface: request parsing, error
// translation to status codes, rate limiting, and health endpoints. All
// screen time semantics live in internal/app; handlers only adapt.
package server
