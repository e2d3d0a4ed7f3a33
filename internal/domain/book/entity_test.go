//go:build unit

package book_test

import (
	"testing"

	"bookswap/internal/domain/book"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAvailableBook(t *testing.T) *book.Book {
	t.Helper()
	b, err := book.NewBook("The Overstory", "Richard Powers", book.ConditionGood, []string{"fiction"}, uuid.New(), 1500)
	require.NoError(t, err)
	return b
}

func TestNewBookValidation(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name      string
		title     string
		author    string
		condition book.Condition
		price     int64
		wantErr   error
	}{
		{"missing title", "", "Author", book.ConditionGood, 100, book.ErrEmptyTitle},
		{"missing author", "Title", "", book.ConditionGood, 100, book.ErrEmptyAuthor},
		{"bad condition", "Title", "Author", book.Condition("torn"), 100, book.ErrInvalidCondition},
		{"negative price", "Title", "Author", book.ConditionNew, -1, book.ErrNegativePrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := book.NewBook(tt.title, tt.author, tt.condition, nil, ownerID, tt.price)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	b := newAvailableBook(t)
	assert.Equal(t, book.AvailabilityAvailable, b.Availability())
}

func TestAvailabilityTransitions(t *testing.T) {
	t.Run("reserve then mark exchanged", func(t *testing.T) {
		b := newAvailableBook(t)
		require.NoError(t, b.Reserve())
		assert.Equal(t, book.AvailabilityReserved, b.Availability())

		require.NoError(t, b.MarkExchanged())
		assert.Equal(t, book.AvailabilityExchanged, b.Availability())
	})

	t.Run("reserve then release", func(t *testing.T) {
		b := newAvailableBook(t)
		require.NoError(t, b.Reserve())
		require.NoError(t, b.Release())
		assert.Equal(t, book.AvailabilityAvailable, b.Availability())
	})

	t.Run("cannot reserve twice", func(t *testing.T) {
		b := newAvailableBook(t)
		require.NoError(t, b.Reserve())
		assert.ErrorIs(t, b.Reserve(), book.ErrNotAvailable)
	})

	t.Run("cannot exchange an unreserved book", func(t *testing.T) {
		b := newAvailableBook(t)
		assert.ErrorIs(t, b.MarkExchanged(), book.ErrNotReserved)
		assert.ErrorIs(t, b.Release(), book.ErrNotReserved)
	})
}
