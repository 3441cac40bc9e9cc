// Package domain contains the core model types, repository contracts, and
// sentinel errors shared across the screen time service. It has no
// dependencies on other internal packages.
package domain
