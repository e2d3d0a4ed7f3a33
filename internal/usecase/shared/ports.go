package shared

import (
	"context"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/ledger"

	"github.com/google/uuid"
)

// UnitOfWork runs fn atomically against every repository it touches. The
// Postgres implementation retries serialization failures; the in-memory fake
// used by tests applies fn under a single lock.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Books() BookRepository
	Exchanges() ExchangeRepository
	Payments() PaymentRepository
	Ledger() LedgerRepository
	Users() UserRepository
	Badges() BadgeRepository
	Redemptions() RedemptionRepository
}

type BookRepository interface {
	Create(ctx context.Context, b *book.Book) error
	// FindByID locks the row for the remainder of the transaction.
	FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error)
	UpdateAvailability(ctx context.Context, id uuid.UUID, availability book.Availability) error
}

type ExchangeRepository interface {
	Create(ctx context.Context, e *exchange.Exchange) error
	// FindByID locks the row for the remainder of the transaction.
	FindByID(ctx context.Context, id uuid.UUID) (*exchange.Exchange, error)
	Update(ctx context.Context, e *exchange.Exchange) error
	// FindActiveByBookID returns the single non-terminal exchange for a book,
	// or a NOT_FOUND repository error when none exists.
	FindActiveByBookID(ctx context.Context, bookID uuid.UUID) (*exchange.Exchange, error)
	CompletedCountByParticipant(ctx context.Context, userID uuid.UUID) (int, error)
	CompletedCountByParticipantSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *exchange.PaymentRecord) error
	// SettledByExchangeID reports whether the exchange has a settled record.
	SettledByExchangeID(ctx context.Context, exchangeID uuid.UUID) (bool, error)
	AttemptCount(ctx context.Context, exchangeID uuid.UUID) (int, error)
}

type LedgerRepository interface {
	Append(ctx context.Context, e ledger.Entry) error
	// BalanceOf sums deltas under the transaction's isolation, locking the
	// user's entries against concurrent appends.
	BalanceOf(ctx context.Context, userID uuid.UUID) (int64, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	AddCO2Saved(ctx context.Context, id uuid.UUID, grams int64) error
}

type BadgeRepository interface {
	EarnedSlugs(ctx context.Context, userID uuid.UUID) (map[string]bool, error)
	Grant(ctx context.Context, userID uuid.UUID, slug string, at time.Time) error
}

type RedemptionRepository interface {
	Create(ctx context.Context, r *Redemption) error
}

// Write-side snapshots prevent dependency on read-side query types
type UserSnapshot struct {
	ID            uuid.UUID
	DisplayName   string
	Location      string
	CO2SavedGrams int64
	Rating        float64
	CreatedAt     time.Time
}

// Redemption is the receipt row written when points are spent.
type Redemption struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	RewardSlug string
	Cost       int64
	CreatedAt  time.Time
}
