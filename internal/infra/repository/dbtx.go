package repository

import (
	"context"
	"errors"

	"bookswap/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by pgxpool.Pool and pgx.Tx, so every
// repository works both inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

func wrapNotFound(msg string) error {
	return infra.WrapRepoErr(infra.KindNotFound, msg, nil)
}

func wrapQueryErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(infra.KindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(infra.KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, msg, err)
		}
	}

	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}
