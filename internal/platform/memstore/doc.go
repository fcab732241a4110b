// Package memstore provides in-memory implementations of the store
// interfaces. It backs the default single-process deployment and every
// engine/service test; the pgx-backed implementations in
// internal/platform/postgres are the durable alternative.
//
// All stores copy entities on the way in and out, so callers can never
// mutate stored state except through the store's own write operations.
package memstore
