package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/fxledger/internal/usecase"
)

// pgErrUniqueViolation is raised when a UNIQUE constraint rejects a write.
const pgErrUniqueViolation = "23505"

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// conn runs on tx when one is given and on the pool otherwise.
func conn(db DB, tx usecase.Transaction) querier {
	if tx == nil {
		return db
	}
	return tx.(*Tx).PgxTx()
}

// mapUniqueViolation translates a unique violation on a known constraint into
// its domain error. Other errors pass through unchanged.
func mapUniqueViolation(err error, constraints map[string]error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		if mapped, ok := constraints[pgErr.ConstraintName]; ok {
			return mapped
		}
	}
	return err
}

func exists(ctx context.Context, q querier, sql string, args ...any) (bool, error) {
	var found bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}

func count(ctx context.Context, q querier, sql string, args ...any) (int64, error) {
	var n int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
