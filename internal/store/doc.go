// Package store defines the persistence boundary for the library: the
// SnapshotStore interface, shared store errors, and transaction helpers
// used by the database-backed implementation in internal/platform/postgres.
package store
