// Package ledger defines the append-only point ledger. A user's balance is
// always the running sum of their entries; no stored counter is authoritative.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrZeroDelta          = errors.New("delta cannot be zero")
	ErrNegativeDelta      = errors.New("negative delta requires redemption reason")
	ErrInvalidReason      = errors.New("invalid ledger reason")
)

type Reason string

const (
	ReasonExchangeCompleted Reason = "exchange_completed"
	ReasonRedemption        Reason = "redemption"
	ReasonBonus             Reason = "bonus"
)

func (r Reason) IsValid() bool {
	switch r {
	case ReasonExchangeCompleted, ReasonRedemption, ReasonBonus:
		return true
	default:
		return false
	}
}

// Entry is an immutable record of one balance change.
type Entry struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Delta      int64
	Reason     Reason
	ExchangeID *uuid.UUID
	CreatedAt  time.Time
}

func NewEntry(userID uuid.UUID, delta int64, reason Reason, exchangeID *uuid.UUID, now time.Time) (Entry, error) {
	if !reason.IsValid() {
		return Entry{}, ErrInvalidReason
	}
	if delta == 0 {
		return Entry{}, ErrZeroDelta
	}
	if delta < 0 && reason != ReasonRedemption {
		return Entry{}, ErrNegativeDelta
	}

	return Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Delta:      delta,
		Reason:     reason,
		ExchangeID: exchangeID,
		CreatedAt:  now,
	}, nil
}

// Balance sums entry deltas; this is the canonical balance computation.
func Balance(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Delta
	}
	return total
}
