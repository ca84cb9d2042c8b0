// Package postgres persists library snapshots in PostgreSQL. It owns the
// schema (embedded goose migrations), maps driver errors onto the store
// error set, and implements store.SnapshotStore.
package postgres
