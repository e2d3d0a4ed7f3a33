package queries

import (
	"context"

	"bookswap/internal/pkg/errs"
)

// LeaderboardReadStore returns rows already ordered: descending total points,
// ties broken by earliest account creation, then id. The ordering contract
// lives here so every backend ranks deterministically.
type LeaderboardReadStore interface {
	TopBalances(ctx context.Context, limit int) ([]*LeaderboardEntry, error)
}

type LeaderboardQueries interface {
	Rank(ctx context.Context, topN int) ([]*LeaderboardEntry, error)
}

type leaderboardQueriesImpl struct {
	store LeaderboardReadStore
}

func NewLeaderboardQueries(store LeaderboardReadStore) LeaderboardQueries {
	return &leaderboardQueriesImpl{store: store}
}

func (q *leaderboardQueriesImpl) Rank(ctx context.Context, topN int) ([]*LeaderboardEntry, error) {
	if topN <= 0 {
		topN = 10
	}
	rows, err := q.store.TopBalances(ctx, topN)
	if err != nil {
		return nil, errs.Wrap(err, "failed to rank leaderboard")
	}
	for i, row := range rows {
		row.Rank = i + 1
	}
	return rows, nil
}
