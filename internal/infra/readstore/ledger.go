package readstore

import (
	"context"

	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LedgerReadStore struct {
	pool *pgxpool.Pool
}

func NewLedgerReadStore(pool *pgxpool.Pool) *LedgerReadStore {
	return &LedgerReadStore{pool: pool}
}

func (s *LedgerReadStore) EntriesByUser(ctx context.Context, userID uuid.UUID) ([]*queries.LedgerEntryView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, delta, reason, exchange_id, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, wrapReadErr("failed to load ledger entries", err)
	}
	defer rows.Close()

	entries := []*queries.LedgerEntryView{}
	for rows.Next() {
		var e queries.LedgerEntryView
		if err := rows.Scan(&e.ID, &e.UserID, &e.Delta, &e.Reason, &e.ExchangeID, &e.CreatedAt); err != nil {
			return nil, wrapReadErr("failed to scan ledger entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read ledger entries", err)
	}
	return entries, nil
}

func (s *LedgerReadStore) BalanceOf(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM ledger_entries WHERE user_id = $1`,
		userID,
	).Scan(&balance)
	if err != nil {
		return 0, wrapReadErr("failed to sum ledger entries", err)
	}
	return balance, nil
}

func (s *LedgerReadStore) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, wrapReadErr("failed to check user", err)
	}
	return exists, nil
}
