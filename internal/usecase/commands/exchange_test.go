//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/gateway"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/keymutex"
	"bookswap/internal/pkg/qrtoken"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/shared"
	"bookswap/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exchangeFixture struct {
	store    *fake.Store
	commands commands.ExchangeCommands
	tokens   *qrtoken.Service
	clock    *clock.MockClock

	ownerID uuid.UUID
	buyerID uuid.UUID
	bookID  uuid.UUID
}

func newExchangeFixture(t *testing.T) *exchangeFixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cfg := config.NewTestConfig()
	store := fake.NewStore()
	tokens := qrtoken.NewService(cfg.Token.Secret, cfg.Token.TTL)
	mockClock := clock.NewMockClock(now)

	f := &exchangeFixture{
		store:  store,
		tokens: tokens,
		clock:  mockClock,
		commands: commands.NewExchangeCommands(
			store,
			gateway.NewLocalGateway(),
			tokens,
			keymutex.New(),
			mockClock,
			cfg.Exchange,
		),
	}

	f.ownerID = f.addUser("Maya Chen")
	f.buyerID = f.addUser("Sam Rivera")
	f.bookID = f.addBook(f.ownerID, 1500)
	return f
}

func (f *exchangeFixture) addUser(name string) uuid.UUID {
	id := uuid.New()
	f.store.AddUser(&shared.UserSnapshot{
		ID:          id,
		DisplayName: name,
		CreatedAt:   f.clock.Now().AddDate(0, -6, 0),
	})
	return id
}

func (f *exchangeFixture) addBook(ownerID uuid.UUID, priceCents int64) uuid.UUID {
	b, err := book.NewBook("The Overstory", "Richard Powers", book.ConditionGood, []string{"fiction"}, ownerID, priceCents)
	if err != nil {
		panic(err)
	}
	f.store.AddBook(b)
	return b.ID()
}

// requested seeds an exchange in Requested state through the command itself.
func (f *exchangeFixture) requested(t *testing.T) *exchange.Exchange {
	t.Helper()
	e, err := f.commands.RequestExchange(context.Background(), f.bookID, f.buyerID)
	require.NoError(t, err)
	return e
}

func (f *exchangeFixture) scheduled(t *testing.T) *exchange.Exchange {
	t.Helper()
	e := f.requested(t)
	_, err := f.commands.AcceptRequest(context.Background(), e.ID(), f.ownerID)
	require.NoError(t, err)
	start := f.clock.Now().Add(24 * time.Hour)
	e2, err := f.commands.ScheduleMeetup(context.Background(), e.ID(), f.buyerID, "Central Library", start, start.Add(time.Hour))
	require.NoError(t, err)
	return e2
}

func (f *exchangeFixture) paid(t *testing.T) *exchange.Exchange {
	t.Helper()
	e := f.scheduled(t)
	record, err := f.commands.SubmitPayment(context.Background(), e.ID(), "card", 1650)
	require.NoError(t, err)
	require.True(t, record.IsSettled())
	return e
}

func (f *exchangeFixture) confirm(t *testing.T, exchangeID, partyID uuid.UUID) (*exchange.Exchange, error) {
	t.Helper()
	token, err := f.tokens.Generate(exchangeID, partyID)
	require.NoError(t, err)
	return f.commands.PresentConfirmation(context.Background(), exchangeID, partyID, token)
}

func TestRequestExchange(t *testing.T) {
	t.Run("creates a requested exchange and reserves the book", func(t *testing.T) {
		f := newExchangeFixture(t)

		e, err := f.commands.RequestExchange(context.Background(), f.bookID, f.buyerID)
		require.NoError(t, err)

		assert.Equal(t, exchange.StateRequested, e.State())
		assert.Equal(t, int64(1500), e.Price().Cents())
		assert.Equal(t, int64(150), e.ServiceFee().Cents())
		assert.Equal(t, int64(1650), e.RequiredPayment().Cents())
		assert.Equal(t, book.AvailabilityReserved, f.store.BookByID(f.bookID).Availability())
	})

	t.Run("rejects requesting your own book", func(t *testing.T) {
		f := newExchangeFixture(t)

		_, err := f.commands.RequestExchange(context.Background(), f.bookID, f.ownerID)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("rejects a second request while one is active", func(t *testing.T) {
		f := newExchangeFixture(t)
		f.requested(t)

		other := f.addUser("Lena Park")
		_, err := f.commands.RequestExchange(context.Background(), f.bookID, other)
		assert.ErrorIs(t, err, errs.ErrBookAlreadyInExchange)
	})

	t.Run("allows a new request after cancellation", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.requested(t)

		_, err := f.commands.Cancel(context.Background(), e.ID(), f.buyerID, "no longer interested")
		require.NoError(t, err)

		other := f.addUser("Lena Park")
		_, err = f.commands.RequestExchange(context.Background(), f.bookID, other)
		assert.NoError(t, err)
	})

	t.Run("unknown book and user", func(t *testing.T) {
		f := newExchangeFixture(t)

		_, err := f.commands.RequestExchange(context.Background(), uuid.New(), f.buyerID)
		assert.ErrorIs(t, err, errs.ErrBookNotFound)

		_, err = f.commands.RequestExchange(context.Background(), f.bookID, uuid.New())
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("concurrent requests for one book admit exactly one", func(t *testing.T) {
		f := newExchangeFixture(t)
		otherID := f.addUser("Lena Park")

		var wg sync.WaitGroup
		errsCh := make(chan error, 2)
		for _, initiator := range []uuid.UUID{f.buyerID, otherID} {
			wg.Add(1)
			go func(id uuid.UUID) {
				defer wg.Done()
				_, err := f.commands.RequestExchange(context.Background(), f.bookID, id)
				errsCh <- err
			}(initiator)
		}
		wg.Wait()
		close(errsCh)

		var succeeded, conflicted int
		for err := range errsCh {
			switch {
			case err == nil:
				succeeded++
			default:
				assert.ErrorIs(t, err, errs.ErrBookAlreadyInExchange)
				conflicted++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, conflicted)
	})
}

func TestAcceptRequest(t *testing.T) {
	t.Run("owner accepts and becomes counterparty", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.requested(t)

		accepted, err := f.commands.AcceptRequest(context.Background(), e.ID(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StateAccepted, accepted.State())
		require.NotNil(t, accepted.CounterpartyID())
		assert.Equal(t, f.ownerID, *accepted.CounterpartyID())
	})

	t.Run("initiator cannot accept their own request", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.requested(t)

		_, err := f.commands.AcceptRequest(context.Background(), e.ID(), f.buyerID)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("accept is rejected outside requested state", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		_, err := f.commands.AcceptRequest(context.Background(), e.ID(), f.ownerID)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestScheduleMeetup(t *testing.T) {
	t.Run("participant schedules the meetup", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		assert.Equal(t, exchange.StateMeetupScheduled, e.State())
		require.NotNil(t, e.Meetup())
		assert.Equal(t, "Central Library", e.Meetup().Location())
	})

	t.Run("a stranger cannot schedule", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.requested(t)
		_, err := f.commands.AcceptRequest(context.Background(), e.ID(), f.ownerID)
		require.NoError(t, err)

		start := f.clock.Now().Add(time.Hour)
		_, err = f.commands.ScheduleMeetup(context.Background(), e.ID(), uuid.New(), "Park", start, start.Add(time.Hour))
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestSubmitPayment(t *testing.T) {
	t.Run("exact price plus fee settles", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		record, err := f.commands.SubmitPayment(context.Background(), e.ID(), "stripe", 1650)
		require.NoError(t, err)
		assert.True(t, record.IsSettled())
		assert.Equal(t, 1, record.Attempt())

		// Payment never advances the lifecycle
		assert.Equal(t, exchange.StateMeetupScheduled, f.store.ExchangeByID(e.ID()).State())
	})

	t.Run("amount mismatch is rejected before the gateway", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		_, err := f.commands.SubmitPayment(context.Background(), e.ID(), "card", 1500)
		assert.ErrorIs(t, err, errs.ErrValidation)

		_, err = f.commands.SubmitPayment(context.Background(), e.ID(), "card", 1651)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("failed attempt stays in history and retry settles", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		record, err := f.commands.SubmitPayment(context.Background(), e.ID(), "cheque", 1650)
		require.NoError(t, err)
		assert.False(t, record.IsSettled())
		assert.Equal(t, 1, record.Attempt())

		record, err = f.commands.SubmitPayment(context.Background(), e.ID(), "card", 1650)
		require.NoError(t, err)
		assert.True(t, record.IsSettled())
		assert.Equal(t, 2, record.Attempt())
	})

	t.Run("a settled exchange rejects further payments", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.paid(t)

		_, err := f.commands.SubmitPayment(context.Background(), e.ID(), "card", 1650)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestPresentConfirmation(t *testing.T) {
	t.Run("rejects a token bound to another party", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.paid(t)

		token, err := f.tokens.Generate(e.ID(), f.buyerID)
		require.NoError(t, err)

		_, err = f.commands.PresentConfirmation(context.Background(), e.ID(), f.ownerID, token)
		assert.ErrorIs(t, err, errs.ErrConfirmationToken)
	})

	t.Run("requires settled payment", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		_, err := f.confirm(t, e.ID(), f.buyerID)
		assert.ErrorIs(t, err, errs.ErrPaymentNotSettled)
	})

	t.Run("first confirmation parks the exchange, second completes it", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.paid(t)

		after, err := f.confirm(t, e.ID(), f.buyerID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StateAwaitingMutualConfirmation, after.State())
		assert.Equal(t, int64(0), f.store.BalanceOf(f.buyerID))

		after, err = f.confirm(t, e.ID(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StateCompleted, after.State())

		// Seller earns more than the buyer bonus
		assert.Equal(t, int64(100), f.store.BalanceOf(f.ownerID))
		assert.Equal(t, int64(40), f.store.BalanceOf(f.buyerID))
		assert.Equal(t, book.AvailabilityExchanged, f.store.BookByID(f.bookID).Availability())
	})

	t.Run("re-presenting a token after completion credits nothing twice", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.paid(t)

		_, err := f.confirm(t, e.ID(), f.buyerID)
		require.NoError(t, err)
		_, err = f.confirm(t, e.ID(), f.ownerID)
		require.NoError(t, err)

		after, err := f.confirm(t, e.ID(), f.ownerID)
		require.NoError(t, err)
		assert.Equal(t, exchange.StateCompleted, after.State())
		assert.Equal(t, int64(100), f.store.BalanceOf(f.ownerID))
		assert.Equal(t, int64(40), f.store.BalanceOf(f.buyerID))
	})
}

func TestCancelExchange(t *testing.T) {
	t.Run("cancelling releases the book", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.scheduled(t)

		cancelled, err := f.commands.Cancel(context.Background(), e.ID(), f.ownerID, "schedule conflict")
		require.NoError(t, err)
		assert.Equal(t, exchange.StateCancelled, cancelled.State())
		assert.Equal(t, "schedule conflict", cancelled.CancelReason())
		assert.Equal(t, book.AvailabilityAvailable, f.store.BookByID(f.bookID).Availability())
	})

	t.Run("only participants may cancel", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.requested(t)

		_, err := f.commands.Cancel(context.Background(), e.ID(), uuid.New(), "")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("completed exchanges cannot be cancelled", func(t *testing.T) {
		f := newExchangeFixture(t)
		e := f.paid(t)
		_, err := f.confirm(t, e.ID(), f.buyerID)
		require.NoError(t, err)
		_, err = f.confirm(t, e.ID(), f.ownerID)
		require.NoError(t, err)

		_, err = f.commands.Cancel(context.Background(), e.ID(), f.buyerID, "")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
