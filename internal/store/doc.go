// Package store provides Postgres persistence for the schedule and
// open-market snapshot tables.
package store
