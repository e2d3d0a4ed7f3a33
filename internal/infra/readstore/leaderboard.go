package readstore

import (
	"context"

	"bookswap/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LeaderboardReadStore struct {
	pool *pgxpool.Pool
}

func NewLeaderboardReadStore(pool *pgxpool.Pool) *LeaderboardReadStore {
	return &LeaderboardReadStore{pool: pool}
}

// TopBalances recomputes standings from ledger sums on every call. Ties on
// total points go to the earlier account, then the smaller id, so ranks are
// stable across reads.
func (s *LeaderboardReadStore) TopBalances(ctx context.Context, limit int) ([]*queries.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT u.id, u.display_name, COALESCE(SUM(l.delta), 0) AS total_points
		FROM users u
		LEFT JOIN ledger_entries l ON l.user_id = u.id
		GROUP BY u.id, u.display_name, u.created_at
		ORDER BY total_points DESC, u.created_at, u.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, wrapReadErr("failed to load leaderboard", err)
	}
	defer rows.Close()

	entries := []*queries.LeaderboardEntry{}
	for rows.Next() {
		var e queries.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.TotalPoints); err != nil {
			return nil, wrapReadErr("failed to scan leaderboard row", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read leaderboard", err)
	}
	return entries, nil
}
