// Package readstore holds the query-side database access. Read stores run
// outside the unit of work, take no row locks, and return view models rather
// than domain aggregates.
package readstore

import (
	"errors"

	"bookswap/internal/infra"

	"github.com/jackc/pgx/v5"
)

func wrapReadErr(msg string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return infra.WrapRepoErr(infra.KindNotFound, msg, err)
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}
