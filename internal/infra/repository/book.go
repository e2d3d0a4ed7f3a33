package repository

import (
	"context"

	"bookswap/internal/domain/book"
	"bookswap/internal/infra"

	"github.com/google/uuid"
)

type BookRepository struct {
	db DBTX
}

func NewBookRepository(db DBTX) *BookRepository {
	return &BookRepository{db: db}
}

func (r *BookRepository) Create(ctx context.Context, b *book.Book) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO books (id, title, author, condition, categories, owner_id, availability, price_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.ID(), b.Title(), b.Author(), string(b.Condition()), b.Categories(),
		b.OwnerID(), string(b.Availability()), b.PriceCents(),
	)
	if err != nil {
		return wrapQueryErr("failed to create book", err)
	}
	return nil
}

// FindByID locks the row so availability transitions serialize per book.
func (r *BookRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	var (
		title, author, condition, availability string
		categories                             []string
		ownerID                                uuid.UUID
		priceCents                             int64
	)
	err := r.db.QueryRow(ctx, `
		SELECT title, author, condition, categories, owner_id, availability, price_cents
		FROM books WHERE id = $1
		FOR UPDATE`, id,
	).Scan(&title, &author, &condition, &categories, &ownerID, &availability, &priceCents)
	if err != nil {
		return nil, wrapQueryErr("failed to find book", err)
	}

	return book.ReconstructBook(
		id, title, author,
		book.Condition(condition), categories, ownerID,
		book.Availability(availability), priceCents,
	), nil
}

func (r *BookRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, availability book.Availability) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE books SET availability = $2 WHERE id = $1`,
		id, string(availability),
	)
	if err != nil {
		return wrapQueryErr("failed to update book availability", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "book not found for availability update", nil)
	}
	return nil
}
