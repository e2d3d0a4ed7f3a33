package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BadgeRepository struct {
	db DBTX
}

func NewBadgeRepository(db DBTX) *BadgeRepository {
	return &BadgeRepository{db: db}
}

func (r *BadgeRepository) EarnedSlugs(ctx context.Context, userID uuid.UUID) (map[string]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT slug FROM badge_grants WHERE user_id = $1`, userID)
	if err != nil {
		return nil, wrapQueryErr("failed to load badge grants", err)
	}
	defer rows.Close()

	earned := make(map[string]bool)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, wrapQueryErr("failed to scan badge grant", err)
		}
		earned[slug] = true
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read badge grants", err)
	}
	return earned, nil
}

// Grant is idempotent: re-granting an earned badge is a no-op.
func (r *BadgeRepository) Grant(ctx context.Context, userID uuid.UUID, slug string, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO badge_grants (user_id, slug, earned_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, slug) DO NOTHING`,
		userID, slug, at,
	)
	if err != nil {
		return wrapQueryErr("failed to grant badge", err)
	}
	return nil
}
