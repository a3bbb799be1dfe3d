package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type contextKey string

const (
	// txKey is the context key for storing an in-flight transaction.
	txKey contextKey = "tx"
)

// Querier is the subset of pgx operations repositories need. It is satisfied
// by both *pgxpool.Pool and pgx.Tx, so repository code works unchanged inside
// and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getTx retrieves an in-flight transaction from context, if any.
func getTx(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(pgx.Tx)
	return tx, ok
}

// withTx stores a transaction in the context.
func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// Querier returns the transaction bound to the context if one exists,
// otherwise the connection pool.
func (db *DB) Querier(ctx context.Context) Querier {
	if tx, ok := getTx(ctx); ok {
		return tx
	}
	return db.Pool
}

// InTx runs fn inside a transaction. The transaction is carried in the
// context passed to fn, so any repository call made through it joins the same
// transaction. If a transaction is already in flight, fn joins it instead of
// opening a nested one. The transaction is rolled back if fn returns an
// error and committed otherwise.
func (db *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := getTx(ctx); ok {
		return fn(ctx)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(withTx(ctx, tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
