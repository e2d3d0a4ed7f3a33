package repository

import (
	"context"

	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, `
		SELECT id, display_name, location, co2_saved_grams, rating, created_at
		FROM users WHERE id = $1`, id,
	).Scan(&snap.ID, &snap.DisplayName, &snap.Location, &snap.CO2SavedGrams, &snap.Rating, &snap.CreatedAt)
	if err != nil {
		return nil, wrapQueryErr("failed to find user", err)
	}
	return &snap, nil
}

func (r *UserRepository) AddCO2Saved(ctx context.Context, id uuid.UUID, grams int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET co2_saved_grams = co2_saved_grams + $2 WHERE id = $1`,
		id, grams,
	)
	if err != nil {
		return wrapQueryErr("failed to add saved CO2", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapNotFound("user not found for CO2 update")
	}
	return nil
}
