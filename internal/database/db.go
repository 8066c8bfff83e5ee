// Package database implements the persistence contracts on PostgreSQL via
// pgx. Job status transitions are single UPDATE statements with the expected
// current status in the WHERE clause, so each transition commits atomically
// and concurrent workers or retries resolve through row counts instead of
// locks.
package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store provides job and user persistence. It implements core.JobStore and
// auth.UserStore.
type Store struct {
	db DBTX
}

// NewStore creates a Store over a pool or transaction.
func NewStore(db DBTX) *Store {
	return &Store{db: db}
}
