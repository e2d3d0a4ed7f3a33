package response

import (
	"bookswap/internal/domain/book"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Condition    string    `json:"condition"`
	Categories   []string  `json:"categories"`
	OwnerID      uuid.UUID `json:"ownerId"`
	Availability string    `json:"availability"`
	PriceCents   int64     `json:"priceCents"`
}

func FromBookEntity(b *book.Book) *BookResponse {
	return &BookResponse{
		ID:           b.ID(),
		Title:        b.Title(),
		Author:       b.Author(),
		Condition:    b.Condition().String(),
		Categories:   b.Categories(),
		OwnerID:      b.OwnerID(),
		Availability: b.Availability().String(),
		PriceCents:   b.PriceCents(),
	}
}

func FromBookView(rm *queries.BookView) *BookResponse {
	return &BookResponse{
		ID:           rm.ID,
		Title:        rm.Title,
		Author:       rm.Author,
		Condition:    rm.Condition,
		Categories:   rm.Categories,
		OwnerID:      rm.OwnerID,
		Availability: rm.Availability,
		PriceCents:   rm.PriceCents,
	}
}
