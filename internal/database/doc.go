// Package database implements the domain repository contracts on PostgreSQL.
// The one-active-session-per-(user, app) invariant and the find-and-close
// operation are enforced in the database itself, so concurrent starts and
// stops on the same key serialize without in-process locking.
package database
