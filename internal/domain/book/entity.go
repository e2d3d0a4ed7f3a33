package book

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle       = errors.New("title is required")
	ErrEmptyAuthor      = errors.New("author is required")
	ErrInvalidCondition = errors.New("invalid book condition")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrNotAvailable     = errors.New("book is not available")
	ErrNotReserved      = errors.New("book is not reserved")
)

type Book struct {
	id           uuid.UUID
	title        string
	author       string
	condition    Condition
	categories   []string
	ownerID      uuid.UUID
	availability Availability
	priceCents   int64
}

func NewBook(title, author string, condition Condition, categories []string, ownerID uuid.UUID, priceCents int64) (*Book, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if author == "" {
		return nil, ErrEmptyAuthor
	}
	if !condition.IsValid() {
		return nil, ErrInvalidCondition
	}
	if priceCents < 0 {
		return nil, ErrNegativePrice
	}

	return &Book{
		id:           uuid.New(),
		title:        title,
		author:       author,
		condition:    condition,
		categories:   categories,
		ownerID:      ownerID,
		availability: AvailabilityAvailable,
		priceCents:   priceCents,
	}, nil
}

func ReconstructBook(
	id uuid.UUID,
	title, author string,
	condition Condition,
	categories []string,
	ownerID uuid.UUID,
	availability Availability,
	priceCents int64,
) *Book {
	return &Book{
		id:           id,
		title:        title,
		author:       author,
		condition:    condition,
		categories:   categories,
		ownerID:      ownerID,
		availability: availability,
		priceCents:   priceCents,
	}
}

// Reserve marks the book as held by an exchange in progress.
func (b *Book) Reserve() error {
	if b.availability != AvailabilityAvailable {
		return ErrNotAvailable
	}
	b.availability = AvailabilityReserved
	return nil
}

// Release returns a reserved book to the open listings after a cancellation.
func (b *Book) Release() error {
	if b.availability != AvailabilityReserved {
		return ErrNotReserved
	}
	b.availability = AvailabilityAvailable
	return nil
}

// MarkExchanged finalizes the book after mutual confirmation.
func (b *Book) MarkExchanged() error {
	if b.availability != AvailabilityReserved {
		return ErrNotReserved
	}
	b.availability = AvailabilityExchanged
	return nil
}

func (b *Book) ID() uuid.UUID              { return b.id }
func (b *Book) Title() string              { return b.title }
func (b *Book) Author() string             { return b.author }
func (b *Book) Condition() Condition       { return b.condition }
func (b *Book) Categories() []string       { return b.categories }
func (b *Book) OwnerID() uuid.UUID         { return b.ownerID }
func (b *Book) Availability() Availability { return b.availability }
func (b *Book) PriceCents() int64          { return b.priceCents }
