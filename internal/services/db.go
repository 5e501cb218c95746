package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Row is a single queried row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is an iterable query result.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

// Result reports the outcome of a statement.
type Result interface {
	RowsAffected() int64
}

// DB is the narrow database surface services depend on. Production code
// passes a PoolAdapter; tests pass a fake.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Exec(ctx context.Context, sql string, args ...any) (Result, error)
}

// PoolAdapter bridges a pgx connection pool to the DB interface.
type PoolAdapter struct {
	pool *pgxpool.Pool
}

func NewPoolAdapter(pool *pgxpool.Pool) *PoolAdapter {
	return &PoolAdapter{pool: pool}
}

func (a *PoolAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := a.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (a *PoolAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.pool.QueryRow(ctx, sql, args...)
}

func (a *PoolAdapter) Exec(ctx context.Context, sql string, args ...any) (Result, error) {
	tag, err := a.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return commandResult{rowsAffected: tag.RowsAffected()}, nil
}

type commandResult struct {
	rowsAffected int64
}

func (r commandResult) RowsAffected() int64 {
	return r.rowsAffected
}
