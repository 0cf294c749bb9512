// Package postgres implements the repository contracts on PostgreSQL through
// the sqlc queries in internal/database/generated.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/modelworkmethod/edm-bot-3.0-v2-sub002/internal/database/generated"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCodeUniqueViolation
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// rowLimit turns a non-positive limit into "no limit"
func rowLimit(limit int) int32 {
	if limit <= 0 || limit > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(limit)
}

// txHelper pairs a transaction with the queries bound to it
type txHelper struct {
	tx pgx.Tx
	q  *generated.Queries
}

// beginTx starts a transaction. Use repository.SafeRollback in defer.
func beginTx(ctx context.Context, db *pgxpool.Pool, q *generated.Queries) (*txHelper, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgBeginTx, err)
	}
	return &txHelper{
		tx: tx,
		q:  q.WithTx(tx),
	}, nil
}

func (h *txHelper) Commit(ctx context.Context) error   { return h.tx.Commit(ctx) }
func (h *txHelper) Rollback(ctx context.Context) error { return h.tx.Rollback(ctx) }

func int16Ptr(v *int) *int16 {
	if v == nil {
		return nil
	}
	n := int16(*v)
	return &n
}

func int32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	n := int32(*v)
	return &n
}

func intPtr[T int16 | int32](v *T) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}
