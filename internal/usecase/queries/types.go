package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ExchangeView struct {
	ID              uuid.UUID          `json:"id"`
	BookID          uuid.UUID          `json:"book_id"`
	BookTitle       string             `json:"book_title"`
	InitiatorID     uuid.UUID          `json:"initiator_id"`
	CounterpartyID  *uuid.UUID         `json:"counterparty_id,omitempty"`
	PriceCents      int64              `json:"price_cents"`
	ServiceFeeCents int64              `json:"service_fee_cents"`
	State           string             `json:"state"`
	MeetupLocation  *string            `json:"meetup_location,omitempty"`
	MeetupStart     *time.Time         `json:"meetup_start,omitempty"`
	MeetupEnd       *time.Time         `json:"meetup_end,omitempty"`
	CancelReason    *string            `json:"cancel_reason,omitempty"`
	History         []StateChangeView  `json:"history"`
	Payments        []PaymentView      `json:"payments"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

type StateChangeView struct {
	State      string    `json:"state"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PaymentView struct {
	ID          uuid.UUID `json:"id"`
	ExchangeID  uuid.UUID `json:"exchange_id"`
	AmountCents int64     `json:"amount_cents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	Attempt     int       `json:"attempt"`
	CreatedAt   time.Time `json:"created_at"`
}

type ExchangeListItem struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"book_id"`
	BookTitle string    `json:"book_title"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

type BookView struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Condition    string    `json:"condition"`
	Categories   []string  `json:"categories"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Availability string    `json:"availability"`
	PriceCents   int64     `json:"price_cents"`
}

type LedgerEntryView struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Delta      int64      `json:"delta"`
	Reason     string     `json:"reason"`
	ExchangeID *uuid.UUID `json:"exchange_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type BalanceView struct {
	UserID  uuid.UUID `json:"user_id"`
	Balance int64     `json:"balance"`
}

type BadgeView struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      string     `json:"rarity"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earned_at,omitempty"`
}

type LevelView struct {
	UserID       uuid.UUID `json:"user_id"`
	Level        int       `json:"level"`
	Name         string    `json:"name"`
	Balance      int64     `json:"balance"`
	PointsToNext int64     `json:"points_to_next"`
}

// LeaderboardEntry is derived, never persisted: recomputed from ledger sums on
// every read.
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"user_id"`
	DisplayName string    `json:"display_name"`
	TotalPoints int64     `json:"total_points"`
}
