package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wordhoard/internal/platform/logger"
)

// TxFn runs inside a transaction opened by RunInTransaction.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxBeginner opens transactions. *sql.DB satisfies it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// RunInTransaction commits when fn returns nil and rolls back otherwise.
// A panic inside fn rolls back and is re-raised. Begin and commit failures
// wrap ErrTransactionFailed; a failed rollback is joined onto fn's error.
func RunInTransaction(ctx context.Context, db TxBeginner, fn TxFn) (err error) {
	log := logger.FromContext(ctx).With(slog.String("component", "store_tx"))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		p := recover()
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("rollback failed", slog.String("error", rbErr.Error()), slog.Any("panic", p))
			if p == nil {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
		if p != nil {
			// ALLOW-PANIC: re-raised after rollback
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		log.Debug("rolling back", slog.String("error", err.Error()))
		return err
	}

	committed = true
	if err = tx.Commit(); err != nil {
		log.Error("commit failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}
