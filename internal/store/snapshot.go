package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/wordhoard/internal/library"
)

// SnapshotStore persists whole-library snapshots. It is the durability
// boundary for the in-memory library; the library itself never calls it.
type SnapshotStore interface {
	// Load returns the most recently saved snapshot, or an error wrapping
	// ErrSnapshotNotFound when nothing has been saved.
	Load(ctx context.Context) (*library.Snapshot, error)

	// Save replaces the stored snapshot with snap atomically.
	Save(ctx context.Context, snap library.Snapshot) error
}

// DBTX is the subset of *sql.DB and *sql.Tx that snapshot rows are
// written and read through.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
