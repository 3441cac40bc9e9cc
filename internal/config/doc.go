// Package config loads service configuration from environment variables and
// validates it eagerly at startup.
package config
