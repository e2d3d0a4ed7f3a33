package commands

import (
	"context"
	"time"

	"bookswap/internal/domain/book"
	"bookswap/internal/domain/exchange"
	"bookswap/internal/domain/ledger"
	"bookswap/internal/gateway"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/config"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/keymutex"
	"bookswap/internal/pkg/qrtoken"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExchangeCommands interface {
	RequestExchange(ctx context.Context, bookID, initiatorID uuid.UUID) (*exchange.Exchange, error)
	AcceptRequest(ctx context.Context, exchangeID, counterpartyID uuid.UUID) (*exchange.Exchange, error)
	ScheduleMeetup(ctx context.Context, exchangeID, partyID uuid.UUID, location string, start, end time.Time) (*exchange.Exchange, error)
	SubmitPayment(ctx context.Context, exchangeID uuid.UUID, method string, amountCents int64) (*exchange.PaymentRecord, error)
	PresentConfirmation(ctx context.Context, exchangeID, partyID uuid.UUID, token string) (*exchange.Exchange, error)
	Cancel(ctx context.Context, exchangeID, partyID uuid.UUID, reason string) (*exchange.Exchange, error)
}

type exchangeCommandsImpl struct {
	uow     shared.UnitOfWork
	gateway gateway.PaymentGateway
	tokens  *qrtoken.Service
	locks   *keymutex.KeyMutex
	clock   clock.Clock
	policy  config.ExchangeConfig
}

func NewExchangeCommands(
	uow shared.UnitOfWork,
	pg gateway.PaymentGateway,
	tokens *qrtoken.Service,
	locks *keymutex.KeyMutex,
	clk clock.Clock,
	policy config.ExchangeConfig,
) ExchangeCommands {
	return &exchangeCommandsImpl{
		uow:     uow,
		gateway: pg,
		tokens:  tokens,
		locks:   locks,
		clock:   clk,
		policy:  policy,
	}
}

// RequestExchange performs the atomic check-and-create for a book's single
// active-transaction slot. Serialized on the book id.
func (c *exchangeCommandsImpl) RequestExchange(ctx context.Context, bookID, initiatorID uuid.UUID) (*exchange.Exchange, error) {
	c.locks.Lock(bookKey(bookID))
	defer c.locks.Unlock(bookKey(bookID))

	var created *exchange.Exchange
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, initiatorID); err != nil {
			return mapNotFound(err, errs.ErrUserNotFound)
		}

		b, err := tx.Books().FindByID(ctx, bookID)
		if err != nil {
			return mapNotFound(err, errs.ErrBookNotFound)
		}
		if b.OwnerID() == initiatorID {
			return errs.Mark(errs.New("cannot request own book"), errs.ErrValidation)
		}

		if _, err := tx.Exchanges().FindActiveByBookID(ctx, bookID); err == nil {
			return errs.ErrBookAlreadyInExchange
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := b.Reserve(); err != nil {
			return errs.ErrBookAlreadyInExchange
		}

		price, err := exchange.NewMoney(b.PriceCents())
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		fee, err := exchange.NewMoney(int64(c.policy.ServiceFeeCents))
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		created = exchange.NewExchange(bookID, initiatorID, price, fee, c.clock.Now())
		if err := tx.Exchanges().Create(ctx, created); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Books().UpdateAvailability(ctx, bookID, b.Availability()); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (c *exchangeCommandsImpl) AcceptRequest(ctx context.Context, exchangeID, counterpartyID uuid.UUID) (*exchange.Exchange, error) {
	return c.mutate(ctx, exchangeID, func(ctx context.Context, tx shared.Tx, e *exchange.Exchange) error {
		if _, err := tx.Users().FindByID(ctx, counterpartyID); err != nil {
			return mapNotFound(err, errs.ErrUserNotFound)
		}
		return mapDomainErr(e.Accept(counterpartyID, c.clock.Now()))
	})
}

func (c *exchangeCommandsImpl) ScheduleMeetup(ctx context.Context, exchangeID, partyID uuid.UUID, location string, start, end time.Time) (*exchange.Exchange, error) {
	return c.mutate(ctx, exchangeID, func(_ context.Context, _ shared.Tx, e *exchange.Exchange) error {
		if !e.IsParticipant(partyID) {
			return errs.Mark(exchange.ErrNotParticipant, errs.ErrValidation)
		}
		meetup, err := exchange.NewMeetup(location, start, end)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		return mapDomainErr(e.ScheduleMeetup(meetup, c.clock.Now()))
	})
}

// SubmitPayment is the checkout step. It never advances the lifecycle; payment
// and meetup scheduling are independent preconditions for confirmation. Failed
// attempts are recorded and retryable.
func (c *exchangeCommandsImpl) SubmitPayment(ctx context.Context, exchangeID uuid.UUID, method string, amountCents int64) (*exchange.PaymentRecord, error) {
	c.locks.Lock(exchangeKey(exchangeID))
	defer c.locks.Unlock(exchangeKey(exchangeID))

	var record *exchange.PaymentRecord
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		e, err := tx.Exchanges().FindByID(ctx, exchangeID)
		if err != nil {
			return mapNotFound(err, errs.ErrExchangeNotFound)
		}
		if !e.IsActive() {
			return errs.ErrInvalidState
		}

		settled, err := tx.Payments().SettledByExchangeID(ctx, exchangeID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if settled {
			return errs.Mark(errs.New("payment already settled"), errs.ErrInvalidState)
		}

		amount, err := exchange.NewMoney(amountCents)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if err := e.ValidatePaymentAmount(amount); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		outcome, err := c.gateway.Authorize(ctx, amountCents, method)
		if err != nil {
			return errs.Wrap(err, "payment gateway authorize")
		}

		attempts, err := tx.Payments().AttemptCount(ctx, exchangeID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		record = exchange.NewPaymentRecord(exchangeID, amount, method, outcome, attempts+1, c.clock.Now())
		if err := tx.Payments().Create(ctx, record); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// PresentConfirmation registers one party's QR confirmation. Completion runs
// inside the same transaction as the book flip and the ledger credits, so a
// reader never observes a completed exchange without its point entries.
func (c *exchangeCommandsImpl) PresentConfirmation(ctx context.Context, exchangeID, partyID uuid.UUID, token string) (*exchange.Exchange, error) {
	return c.mutate(ctx, exchangeID, func(ctx context.Context, tx shared.Tx, e *exchange.Exchange) error {
		if !c.tokens.Verify(exchangeID, partyID, token) {
			return errs.ErrConfirmationToken
		}

		settled, err := tx.Payments().SettledByExchangeID(ctx, exchangeID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		completed, err := e.Confirm(partyID, settled, c.clock.Now())
		if err != nil {
			return mapDomainErr(err)
		}
		if !completed {
			return nil
		}
		return c.settleCompletion(ctx, tx, e)
	})
}

// settleCompletion flips the book to exchanged and appends the completion
// credits for both parties. Amounts come from the policy table: the seller
// side earns more than the buyer bonus.
func (c *exchangeCommandsImpl) settleCompletion(ctx context.Context, tx shared.Tx, e *exchange.Exchange) error {
	b, err := tx.Books().FindByID(ctx, e.BookID())
	if err != nil {
		return mapNotFound(err, errs.ErrBookNotFound)
	}
	if err := b.MarkExchanged(); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Books().UpdateAvailability(ctx, b.ID(), b.Availability()); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	exchangeID := e.ID()
	credits := []struct {
		userID uuid.UUID
		points int64
	}{
		{*e.CounterpartyID(), c.policy.SellerPoints},
		{e.InitiatorID(), c.policy.BuyerPoints},
	}
	for _, credit := range credits {
		entry, err := ledger.NewEntry(credit.userID, credit.points, ledger.ReasonExchangeCompleted, &exchangeID, now)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if err := tx.Ledger().Append(ctx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if err := tx.Users().AddCO2Saved(ctx, credit.userID, c.policy.CO2SavedGrams); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	return nil
}

// Cancel releases the book back to the listings and leaves the ledger
// untouched.
func (c *exchangeCommandsImpl) Cancel(ctx context.Context, exchangeID, partyID uuid.UUID, reason string) (*exchange.Exchange, error) {
	return c.mutate(ctx, exchangeID, func(ctx context.Context, tx shared.Tx, e *exchange.Exchange) error {
		if !e.IsParticipant(partyID) {
			return errs.Mark(exchange.ErrNotParticipant, errs.ErrValidation)
		}
		if err := mapDomainErr(e.Cancel(reason, c.clock.Now())); err != nil {
			return err
		}

		b, err := tx.Books().FindByID(ctx, e.BookID())
		if err != nil {
			return mapNotFound(err, errs.ErrBookNotFound)
		}
		if b.Availability() == book.AvailabilityReserved {
			if err := b.Release(); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
			if err := tx.Books().UpdateAvailability(ctx, b.ID(), b.Availability()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
}

// mutate serializes a lifecycle mutation on the exchange id and persists the
// updated entity when fn succeeds.
func (c *exchangeCommandsImpl) mutate(
	ctx context.Context,
	exchangeID uuid.UUID,
	fn func(ctx context.Context, tx shared.Tx, e *exchange.Exchange) error,
) (*exchange.Exchange, error) {
	c.locks.Lock(exchangeKey(exchangeID))
	defer c.locks.Unlock(exchangeKey(exchangeID))

	var result *exchange.Exchange
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		e, err := tx.Exchanges().FindByID(ctx, exchangeID)
		if err != nil {
			return mapNotFound(err, errs.ErrExchangeNotFound)
		}
		if err := fn(ctx, tx, e); err != nil {
			return err
		}
		if err := tx.Exchanges().Update(ctx, e); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		result = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func mapDomainErr(err error) error {
	switch err {
	case nil:
		return nil
	case exchange.ErrInvalidTransition, exchange.ErrTerminalState:
		return errs.Mark(err, errs.ErrInvalidState)
	case exchange.ErrPaymentRequired:
		return errs.Mark(err, errs.ErrPaymentNotSettled)
	case exchange.ErrNotParticipant, exchange.ErrSelfAccept, exchange.ErrNoCounterparty:
		return errs.Mark(err, errs.ErrValidation)
	default:
		return errs.Mark(err, errs.ErrValidation)
	}
}

func mapNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func bookKey(id uuid.UUID) string     { return "book:" + id.String() }
func exchangeKey(id uuid.UUID) string { return "exchange:" + id.String() }
func userKey(id uuid.UUID) string     { return "user:" + id.String() }
