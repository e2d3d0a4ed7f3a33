package repository

import (
	"context"

	"bookswap/internal/domain/ledger"
	"bookswap/internal/pkg/errs"

	"github.com/google/uuid"
)

type LedgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Append writes one ledger entry. Negative deltas are checked against the
// current balance under the user-row lock, so the store itself can never be
// driven negative regardless of the caller.
func (r *LedgerRepository) Append(ctx context.Context, e ledger.Entry) error {
	if e.Delta < 0 {
		balance, err := r.BalanceOf(ctx, e.UserID)
		if err != nil {
			return err
		}
		if balance+e.Delta < 0 {
			return errs.ErrInsufficientPoints
		}
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO ledger_entries (id, user_id, delta, reason, exchange_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.UserID, e.Delta, string(e.Reason), e.ExchangeID, e.CreatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to append ledger entry", err)
	}
	return nil
}

// BalanceOf locks the user's row first so a concurrent append cannot slip in
// between the sum and a dependent write in the same transaction.
func (r *LedgerRepository) BalanceOf(ctx context.Context, userID uuid.UUID) (int64, error) {
	var lockedID uuid.UUID
	err := r.db.QueryRow(ctx,
		`SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID,
	).Scan(&lockedID)
	if err != nil {
		return 0, wrapQueryErr("failed to lock user for balance", err)
	}

	var balance int64
	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, wrapQueryErr("failed to sum ledger entries", err)
	}
	return balance, nil
}
