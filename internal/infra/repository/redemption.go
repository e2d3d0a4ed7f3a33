package repository

import (
	"context"

	"bookswap/internal/usecase/shared"
)

type RedemptionRepository struct {
	db DBTX
}

func NewRedemptionRepository(db DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

func (r *RedemptionRepository) Create(ctx context.Context, red *shared.Redemption) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO redemptions (id, user_id, reward_slug, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		red.ID, red.UserID, red.RewardSlug, red.Cost, red.CreatedAt,
	)
	if err != nil {
		return wrapQueryErr("failed to create redemption", err)
	}
	return nil
}
