// Package app is the application layer: the session tracker, category
// registry, usage aggregator, productivity scorer, and limit evaluator.
// Components receive their repositories and clock by injection and never
// cache mutable state between calls.
package app
