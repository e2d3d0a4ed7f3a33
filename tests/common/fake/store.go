// Package fake provides an in-memory unit of work for unit tests. The store
// serializes every transaction under one lock, so tests exercise the same
// atomicity the Postgres implementation guarantees with row locks.
package fake

import (
	"context"
	"sync"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/ledger"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type Store struct {
	mu sync.Mutex

	Books       map[uuid.UUID]*book.Book
	Exchanges   map[uuid.UUID]*exchange.Exchange
	Payments    []*exchange.PaymentRecord
	Entries     []ledger.Entry
	Users       map[uuid.UUID]*shared.UserSnapshot
	BadgeGrants map[uuid.UUID]map[string]time.Time
	Redemptions []*shared.Redemption
}

func NewStore() *Store {
	return &Store{
		Books:       make(map[uuid.UUID]*book.Book),
		Exchanges:   make(map[uuid.UUID]*exchange.Exchange),
		Users:       make(map[uuid.UUID]*shared.UserSnapshot),
		BadgeGrants: make(map[uuid.UUID]map[string]time.Time),
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, &fakeTx{store: s})
}

// Seed helpers

func (s *Store) AddUser(u *shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users[u.ID] = u
}

func (s *Store) AddBook(b *book.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Books[b.ID()] = b
}

func (s *Store) AddExchange(e *exchange.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *e
	s.Exchanges[e.ID()] = &c
}

func (s *Store) AddEntry(e ledger.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries = append(s.Entries, e)
}

func (s *Store) ExchangeByID(id uuid.UUID) *exchange.Exchange {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.Exchanges[id]
	if !ok {
		return nil
	}
	c := *e
	return &c
}

func (s *Store) BookByID(id uuid.UUID) *book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.Books[id]
	if !ok {
		return nil
	}
	c := *b
	return &c
}

func (s *Store) BalanceOf(userID uuid.UUID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceOfLocked(userID)
}

func (s *Store) balanceOfLocked(userID uuid.UUID) int64 {
	var total int64
	for _, e := range s.Entries {
		if e.UserID == userID {
			total += e.Delta
		}
	}
	return total
}

type fakeTx struct {
	store *Store
}

func (t *fakeTx) Books() shared.BookRepository             { return &bookRepo{t.store} }
func (t *fakeTx) Exchanges() shared.ExchangeRepository     { return &exchangeRepo{t.store} }
func (t *fakeTx) Payments() shared.PaymentRepository       { return &paymentRepo{t.store} }
func (t *fakeTx) Ledger() shared.LedgerRepository          { return &ledgerRepo{t.store} }
func (t *fakeTx) Users() shared.UserRepository             { return &userRepo{t.store} }
func (t *fakeTx) Badges() shared.BadgeRepository           { return &badgeRepo{t.store} }
func (t *fakeTx) Redemptions() shared.RedemptionRepository { return &redemptionRepo{t.store} }

func notFound(msg string) error {
	return infra.WrapRepoErr(infra.KindNotFound, msg, nil)
}

type bookRepo struct{ store *Store }

func (r *bookRepo) Create(_ context.Context, b *book.Book) error {
	c := *b
	r.store.Books[b.ID()] = &c
	return nil
}

func (r *bookRepo) FindByID(_ context.Context, id uuid.UUID) (*book.Book, error) {
	b, ok := r.store.Books[id]
	if !ok {
		return nil, notFound("book not found")
	}
	c := *b
	return &c, nil
}

func (r *bookRepo) UpdateAvailability(_ context.Context, id uuid.UUID, availability book.Availability) error {
	b, ok := r.store.Books[id]
	if !ok {
		return notFound("book not found")
	}
	r.store.Books[id] = book.ReconstructBook(
		b.ID(), b.Title(), b.Author(), b.Condition(), b.Categories(),
		b.OwnerID(), availability, b.PriceCents(),
	)
	return nil
}

type exchangeRepo struct{ store *Store }

func (r *exchangeRepo) Create(_ context.Context, e *exchange.Exchange) error {
	c := *e
	r.store.Exchanges[e.ID()] = &c
	return nil
}

func (r *exchangeRepo) FindByID(_ context.Context, id uuid.UUID) (*exchange.Exchange, error) {
	e, ok := r.store.Exchanges[id]
	if !ok {
		return nil, notFound("exchange not found")
	}
	c := *e
	return &c, nil
}

func (r *exchangeRepo) Update(_ context.Context, e *exchange.Exchange) error {
	if _, ok := r.store.Exchanges[e.ID()]; !ok {
		return notFound("exchange not found")
	}
	c := *e
	r.store.Exchanges[e.ID()] = &c
	return nil
}

func (r *exchangeRepo) FindActiveByBookID(_ context.Context, bookID uuid.UUID) (*exchange.Exchange, error) {
	for _, e := range r.store.Exchanges {
		if e.BookID() == bookID && e.IsActive() {
			c := *e
			return &c, nil
		}
	}
	return nil, notFound("no active exchange for book")
}

func (r *exchangeRepo) CompletedCountByParticipant(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, e := range r.store.Exchanges {
		if e.State() == exchange.StateCompleted && e.IsParticipant(userID) {
			count++
		}
	}
	return count, nil
}

func (r *exchangeRepo) CompletedCountByParticipantSince(_ context.Context, userID uuid.UUID, since time.Time) (int, error) {
	count := 0
	for _, e := range r.store.Exchanges {
		if e.State() != exchange.StateCompleted || !e.IsParticipant(userID) {
			continue
		}
		for _, change := range e.History() {
			if change.State == exchange.StateCompleted && !change.OccurredAt.Before(since) {
				count++
				break
			}
		}
	}
	return count, nil
}

type paymentRepo struct{ store *Store }

func (r *paymentRepo) Create(_ context.Context, p *exchange.PaymentRecord) error {
	c := *p
	r.store.Payments = append(r.store.Payments, &c)
	return nil
}

func (r *paymentRepo) SettledByExchangeID(_ context.Context, exchangeID uuid.UUID) (bool, error) {
	for _, p := range r.store.Payments {
		if p.ExchangeID() == exchangeID && p.IsSettled() {
			return true, nil
		}
	}
	return false, nil
}

func (r *paymentRepo) AttemptCount(_ context.Context, exchangeID uuid.UUID) (int, error) {
	count := 0
	for _, p := range r.store.Payments {
		if p.ExchangeID() == exchangeID {
			count++
		}
	}
	return count, nil
}

type ledgerRepo struct{ store *Store }

func (r *ledgerRepo) Append(_ context.Context, e ledger.Entry) error {
	if e.Delta < 0 && r.store.balanceOfLocked(e.UserID)+e.Delta < 0 {
		return errs.ErrInsufficientPoints
	}
	r.store.Entries = append(r.store.Entries, e)
	return nil
}

func (r *ledgerRepo) BalanceOf(_ context.Context, userID uuid.UUID) (int64, error) {
	if _, ok := r.store.Users[userID]; !ok {
		return 0, notFound("user not found")
	}
	return r.store.balanceOfLocked(userID), nil
}

type userRepo struct{ store *Store }

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.store.Users[id]
	if !ok {
		return nil, notFound("user not found")
	}
	c := *u
	return &c, nil
}

func (r *userRepo) AddCO2Saved(_ context.Context, id uuid.UUID, grams int64) error {
	u, ok := r.store.Users[id]
	if !ok {
		return notFound("user not found")
	}
	u.CO2SavedGrams += grams
	return nil
}

type badgeRepo struct{ store *Store }

func (r *badgeRepo) EarnedSlugs(_ context.Context, userID uuid.UUID) (map[string]bool, error) {
	earned := make(map[string]bool)
	for slug := range r.store.BadgeGrants[userID] {
		earned[slug] = true
	}
	return earned, nil
}

func (r *badgeRepo) Grant(_ context.Context, userID uuid.UUID, slug string, at time.Time) error {
	grants, ok := r.store.BadgeGrants[userID]
	if !ok {
		grants = make(map[string]time.Time)
		r.store.BadgeGrants[userID] = grants
	}
	if _, exists := grants[slug]; !exists {
		grants[slug] = at
	}
	return nil
}

type redemptionRepo struct{ store *Store }

func (r *redemptionRepo) Create(_ context.Context, red *shared.Redemption) error {
	c := *red
	r.store.Redemptions = append(r.store.Redemptions, &c)
	return nil
}
