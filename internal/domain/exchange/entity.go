package exchange

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition  = errors.New("invalid lifecycle transition")
	ErrTerminalState      = errors.New("exchange is in a terminal state")
	ErrSelfAccept         = errors.New("initiator cannot accept their own request")
	ErrNotParticipant     = errors.New("party is not part of this exchange")
	ErrPaymentRequired    = errors.New("payment must be settled before confirmation")
	ErrAmountMismatch     = errors.New("payment amount does not match price plus service fee")
	ErrNoCounterparty     = errors.New("exchange has no counterparty yet")
)

// Exchange tracks one book moving between two parties, from request to
// completed handoff. All mutations go through the transition methods below;
// the struct itself is never exported with writable fields.
type Exchange struct {
	id                      uuid.UUID
	bookID                  uuid.UUID
	initiatorID             uuid.UUID
	counterpartyID          *uuid.UUID
	price                   Money
	serviceFee              Money
	state                   State
	history                 []StateChange
	meetup                  *Meetup
	initiatorConfirmedAt    *time.Time
	counterpartyConfirmedAt *time.Time
	cancelReason            string
	createdAt               time.Time
	updatedAt               time.Time
}

func NewExchange(bookID, initiatorID uuid.UUID, price, serviceFee Money, now time.Time) *Exchange {
	return &Exchange{
		id:          uuid.New(),
		bookID:      bookID,
		initiatorID: initiatorID,
		price:       price,
		serviceFee:  serviceFee,
		state:       StateRequested,
		history:     []StateChange{{State: StateRequested, OccurredAt: now}},
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructExchange(
	id, bookID, initiatorID uuid.UUID,
	counterpartyID *uuid.UUID,
	price, serviceFee Money,
	state State,
	history []StateChange,
	meetup *Meetup,
	initiatorConfirmedAt, counterpartyConfirmedAt *time.Time,
	cancelReason string,
	createdAt, updatedAt time.Time,
) *Exchange {
	return &Exchange{
		id:                      id,
		bookID:                  bookID,
		initiatorID:             initiatorID,
		counterpartyID:          counterpartyID,
		price:                   price,
		serviceFee:              serviceFee,
		state:                   state,
		history:                 history,
		meetup:                  meetup,
		initiatorConfirmedAt:    initiatorConfirmedAt,
		counterpartyConfirmedAt: counterpartyConfirmedAt,
		cancelReason:            cancelReason,
		createdAt:               createdAt,
		updatedAt:               updatedAt,
	}
}

// Accept binds the accepting party as counterparty. Valid only from Requested.
func (e *Exchange) Accept(counterpartyID uuid.UUID, now time.Time) error {
	if e.state != StateRequested {
		return ErrInvalidTransition
	}
	if counterpartyID == e.initiatorID {
		return ErrSelfAccept
	}
	e.counterpartyID = &counterpartyID
	e.transitionTo(StateAccepted, now)
	return nil
}

// ScheduleMeetup records the meetup descriptor. Valid only from Accepted.
func (e *Exchange) ScheduleMeetup(meetup Meetup, now time.Time) error {
	if e.state != StateAccepted {
		return ErrInvalidTransition
	}
	e.meetup = &meetup
	e.transitionTo(StateMeetupScheduled, now)
	return nil
}

// RequiredPayment is the checkout total: book price plus the fixed service fee.
func (e *Exchange) RequiredPayment() Money {
	return e.price.Add(e.serviceFee)
}

// ValidatePaymentAmount rejects checkout amounts that differ from the total.
func (e *Exchange) ValidatePaymentAmount(amount Money) error {
	if !amount.Equals(e.RequiredPayment()) {
		return ErrAmountMismatch
	}
	return nil
}

// Confirm registers one party's QR confirmation. The first confirmation moves
// the exchange to AwaitingMutualConfirmation; the second, by the other party,
// completes it. A party re-confirming is a no-op in any state, including after
// completion. Returns true only on the call that completes the exchange.
func (e *Exchange) Confirm(partyID uuid.UUID, paymentSettled bool, now time.Time) (bool, error) {
	// The no-op check must come before the state guard, otherwise a repeat
	// confirmation after completion would surface as a transition error.
	switch {
	case partyID == e.initiatorID:
		if e.initiatorConfirmedAt != nil {
			return false, nil
		}
	case e.counterpartyID != nil && partyID == *e.counterpartyID:
		if e.counterpartyConfirmedAt != nil {
			return false, nil
		}
	default:
		return false, ErrNotParticipant
	}

	if e.state != StateMeetupScheduled && e.state != StateAwaitingMutualConfirmation {
		return false, ErrInvalidTransition
	}
	if !paymentSettled {
		return false, ErrPaymentRequired
	}
	if e.counterpartyID == nil {
		return false, ErrNoCounterparty
	}

	t := now
	if partyID == e.initiatorID {
		e.initiatorConfirmedAt = &t
	} else {
		e.counterpartyConfirmedAt = &t
	}

	if e.initiatorConfirmedAt != nil && e.counterpartyConfirmedAt != nil {
		e.transitionTo(StateCompleted, now)
		return true, nil
	}
	if e.state == StateMeetupScheduled {
		e.transitionTo(StateAwaitingMutualConfirmation, now)
	}
	return false, nil
}

// Cancel terminates the exchange from any non-terminal state.
func (e *Exchange) Cancel(reason string, now time.Time) error {
	if e.state.IsTerminal() {
		return ErrTerminalState
	}
	e.cancelReason = reason
	e.transitionTo(StateCancelled, now)
	return nil
}

func (e *Exchange) transitionTo(next State, now time.Time) {
	e.state = next
	e.history = append(e.history, StateChange{State: next, OccurredAt: now})
	e.updatedAt = now
}

// IsParticipant reports whether partyID is the initiator or the counterparty.
func (e *Exchange) IsParticipant(partyID uuid.UUID) bool {
	if partyID == e.initiatorID {
		return true
	}
	return e.counterpartyID != nil && partyID == *e.counterpartyID
}

func (e *Exchange) IsActive() bool {
	return !e.state.IsTerminal()
}

func (e *Exchange) ID() uuid.UUID              { return e.id }
func (e *Exchange) BookID() uuid.UUID          { return e.bookID }
func (e *Exchange) InitiatorID() uuid.UUID     { return e.initiatorID }
func (e *Exchange) CounterpartyID() *uuid.UUID { return e.counterpartyID }
func (e *Exchange) Price() Money               { return e.price }
func (e *Exchange) ServiceFee() Money          { return e.serviceFee }
func (e *Exchange) State() State               { return e.state }
func (e *Exchange) History() []StateChange     { return e.history }
func (e *Exchange) Meetup() *Meetup            { return e.meetup }
func (e *Exchange) CancelReason() string       { return e.cancelReason }
func (e *Exchange) CreatedAt() time.Time       { return e.createdAt }
func (e *Exchange) UpdatedAt() time.Time       { return e.updatedAt }

func (e *Exchange) InitiatorConfirmedAt() *time.Time    { return e.initiatorConfirmedAt }
func (e *Exchange) CounterpartyConfirmedAt() *time.Time { return e.counterpartyConfirmedAt }
