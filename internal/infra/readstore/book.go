package readstore

import (
	"context"

	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookReadStore struct {
	pool *pgxpool.Pool
}

func NewBookReadStore(pool *pgxpool.Pool) *BookReadStore {
	return &BookReadStore{pool: pool}
}

func (s *BookReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookView, error) {
	var view queries.BookView
	err := s.pool.QueryRow(ctx, `
		SELECT id, title, author, condition, categories, owner_id, availability, price_cents
		FROM books WHERE id = $1`, id,
	).Scan(
		&view.ID, &view.Title, &view.Author, &view.Condition,
		&view.Categories, &view.OwnerID, &view.Availability, &view.PriceCents,
	)
	if err != nil {
		return nil, wrapReadErr("failed to find book view", err)
	}
	return &view, nil
}

func (s *BookReadStore) ListAvailable(ctx context.Context, limit int) ([]*queries.BookView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, author, condition, categories, owner_id, availability, price_cents
		FROM books
		WHERE availability = 'available'
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, wrapReadErr("failed to list available books", err)
	}
	defer rows.Close()

	views := []*queries.BookView{}
	for rows.Next() {
		var view queries.BookView
		if err := rows.Scan(
			&view.ID, &view.Title, &view.Author, &view.Condition,
			&view.Categories, &view.OwnerID, &view.Availability, &view.PriceCents,
		); err != nil {
			return nil, wrapReadErr("failed to scan book view", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read book list", err)
	}
	return views, nil
}
