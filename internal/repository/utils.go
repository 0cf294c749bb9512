package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/logger"
)

// SafeRollback rolls back a transaction and logs any error.
// Rolling back an already committed transaction is not an error.
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
