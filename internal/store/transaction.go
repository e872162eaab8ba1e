package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/analogalgo/letters/internal/platform/logger"
)

// TxFn runs inside a transaction. tx is nil when there is no database and
// the stores are in memory.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// RunInTransaction executes fn in a database transaction, committing when fn
// returns nil and rolling back otherwise. A panic inside fn rolls back and is
// re-raised. With a nil db, fn is called directly with a nil tx.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	if db == nil {
		return fn(ctx, nil)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.ErrorContext(ctx, "failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: begin: %w", ErrTransactionFailed, err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.ErrorContext(ctx, "rollback after panic failed",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			}
			// ALLOW-PANIC: re-raise after rollback
			panic(p)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ErrorContext(ctx, "rollback failed",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		log.ErrorContext(ctx, "failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: commit: %w", ErrTransactionFailed, err)
	}
	return nil
}
