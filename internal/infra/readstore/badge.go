package readstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BadgeReadStore struct {
	pool *pgxpool.Pool
}

func NewBadgeReadStore(pool *pgxpool.Pool) *BadgeReadStore {
	return &BadgeReadStore{pool: pool}
}

func (s *BadgeReadStore) EarnedBadges(ctx context.Context, userID uuid.UUID) (map[string]time.Time, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT slug, earned_at FROM badge_grants WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapReadErr("failed to load badge grants", err)
	}
	defer rows.Close()

	earned := make(map[string]time.Time)
	for rows.Next() {
		var (
			slug     string
			earnedAt time.Time
		)
		if err := rows.Scan(&slug, &earnedAt); err != nil {
			return nil, wrapReadErr("failed to scan badge grant", err)
		}
		earned[slug] = earnedAt
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read badge grants", err)
	}
	return earned, nil
}
