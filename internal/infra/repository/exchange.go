package repository

import (
	"context"
	"time"

	"bookswap/internal/domain/exchange"

	"github.com/google/uuid"
)

type ExchangeRepository struct {
	db DBTX
}

func NewExchangeRepository(db DBTX) *ExchangeRepository {
	return &ExchangeRepository{db: db}
}

func (r *ExchangeRepository) Create(ctx context.Context, e *exchange.Exchange) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO exchanges (
			id, book_id, initiator_id, counterparty_id,
			price_cents, service_fee_cents, state,
			meetup_location, meetup_start, meetup_end,
			initiator_confirmed_at, counterparty_confirmed_at,
			cancel_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		exchangeRowArgs(e)...,
	)
	if err != nil {
		return wrapQueryErr("failed to create exchange", err)
	}
	return r.insertEvents(ctx, e)
}

// FindByID locks the row so lifecycle transitions serialize per exchange.
func (r *ExchangeRepository) FindByID(ctx context.Context, id uuid.UUID) (*exchange.Exchange, error) {
	return r.findOne(ctx, `
		SELECT id, book_id, initiator_id, counterparty_id,
		       price_cents, service_fee_cents, state,
		       meetup_location, meetup_start, meetup_end,
		       initiator_confirmed_at, counterparty_confirmed_at,
		       cancel_reason, created_at, updated_at
		FROM exchanges WHERE id = $1
		FOR UPDATE`, id)
}

func (r *ExchangeRepository) Update(ctx context.Context, e *exchange.Exchange) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE exchanges SET
			counterparty_id = $2,
			state = $3,
			meetup_location = $4,
			meetup_start = $5,
			meetup_end = $6,
			initiator_confirmed_at = $7,
			counterparty_confirmed_at = $8,
			cancel_reason = $9,
			updated_at = $10
		WHERE id = $1`,
		e.ID(), e.CounterpartyID(), string(e.State()),
		meetupLocation(e), meetupStart(e), meetupEnd(e),
		e.InitiatorConfirmedAt(), e.CounterpartyConfirmedAt(),
		e.CancelReason(), e.UpdatedAt(),
	)
	if err != nil {
		return wrapQueryErr("failed to update exchange", err)
	}
	if tag.RowsAffected() == 0 {
		return wrapNotFound("exchange not found for update")
	}
	return r.insertEvents(ctx, e)
}

// FindActiveByBookID enforces the single-active-exchange rule per book.
func (r *ExchangeRepository) FindActiveByBookID(ctx context.Context, bookID uuid.UUID) (*exchange.Exchange, error) {
	return r.findOne(ctx, `
		SELECT id, book_id, initiator_id, counterparty_id,
		       price_cents, service_fee_cents, state,
		       meetup_location, meetup_start, meetup_end,
		       initiator_confirmed_at, counterparty_confirmed_at,
		       cancel_reason, created_at, updated_at
		FROM exchanges
		WHERE book_id = $1 AND state NOT IN ('completed', 'cancelled')
		LIMIT 1`, bookID)
}

func (r *ExchangeRepository) CompletedCountByParticipant(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM exchanges
		WHERE state = 'completed' AND (initiator_id = $1 OR counterparty_id = $1)`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, wrapQueryErr("failed to count completed exchanges", err)
	}
	return count, nil
}

func (r *ExchangeRepository) CompletedCountByParticipantSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM exchanges e
		JOIN exchange_events ev ON ev.exchange_id = e.id AND ev.state = 'completed'
		WHERE (e.initiator_id = $1 OR e.counterparty_id = $1) AND ev.occurred_at >= $2`,
		userID, since,
	).Scan(&count)
	if err != nil {
		return 0, wrapQueryErr("failed to count recent completed exchanges", err)
	}
	return count, nil
}

func (r *ExchangeRepository) findOne(ctx context.Context, query string, arg any) (*exchange.Exchange, error) {
	var (
		id, bookID, initiatorID                            uuid.UUID
		counterpartyID                                     *uuid.UUID
		priceCents, serviceFeeCents                        int64
		state, cancelReason                                string
		meetupLoc                                          *string
		meetupStartAt, meetupEndAt                         *time.Time
		initiatorConfirmedAt, counterpartyConfirmedAt      *time.Time
		createdAt, updatedAt                               time.Time
	)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&id, &bookID, &initiatorID, &counterpartyID,
		&priceCents, &serviceFeeCents, &state,
		&meetupLoc, &meetupStartAt, &meetupEndAt,
		&initiatorConfirmedAt, &counterpartyConfirmedAt,
		&cancelReason, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, wrapQueryErr("failed to find exchange", err)
	}

	history, err := r.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}

	price, err := exchange.NewMoney(priceCents)
	if err != nil {
		return nil, wrapQueryErr("invalid stored price", err)
	}
	fee, err := exchange.NewMoney(serviceFeeCents)
	if err != nil {
		return nil, wrapQueryErr("invalid stored service fee", err)
	}

	var meetup *exchange.Meetup
	if meetupLoc != nil && meetupStartAt != nil && meetupEndAt != nil {
		m, err := exchange.NewMeetup(*meetupLoc, *meetupStartAt, *meetupEndAt)
		if err != nil {
			return nil, wrapQueryErr("invalid stored meetup", err)
		}
		meetup = &m
	}

	return exchange.ReconstructExchange(
		id, bookID, initiatorID, counterpartyID,
		price, fee,
		exchange.State(state), history, meetup,
		initiatorConfirmedAt, counterpartyConfirmedAt,
		cancelReason, createdAt, updatedAt,
	), nil
}

func (r *ExchangeRepository) loadHistory(ctx context.Context, exchangeID uuid.UUID) ([]exchange.StateChange, error) {
	rows, err := r.db.Query(ctx, `
		SELECT state, occurred_at FROM exchange_events
		WHERE exchange_id = $1
		ORDER BY occurred_at, state`, exchangeID)
	if err != nil {
		return nil, wrapQueryErr("failed to load exchange history", err)
	}
	defer rows.Close()

	var history []exchange.StateChange
	for rows.Next() {
		var (
			state      string
			occurredAt time.Time
		)
		if err := rows.Scan(&state, &occurredAt); err != nil {
			return nil, wrapQueryErr("failed to scan exchange event", err)
		}
		history = append(history, exchange.StateChange{State: exchange.State(state), OccurredAt: occurredAt})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapQueryErr("failed to read exchange events", err)
	}
	return history, nil
}

// insertEvents is idempotent: the events table keys on (exchange_id, state)
// and the forward path never revisits a state.
func (r *ExchangeRepository) insertEvents(ctx context.Context, e *exchange.Exchange) error {
	for _, change := range e.History() {
		_, err := r.db.Exec(ctx, `
			INSERT INTO exchange_events (exchange_id, state, occurred_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (exchange_id, state) DO NOTHING`,
			e.ID(), string(change.State), change.OccurredAt,
		)
		if err != nil {
			return wrapQueryErr("failed to record exchange event", err)
		}
	}
	return nil
}

func exchangeRowArgs(e *exchange.Exchange) []any {
	return []any{
		e.ID(), e.BookID(), e.InitiatorID(), e.CounterpartyID(),
		e.Price().Cents(), e.ServiceFee().Cents(), string(e.State()),
		meetupLocation(e), meetupStart(e), meetupEnd(e),
		e.InitiatorConfirmedAt(), e.CounterpartyConfirmedAt(),
		e.CancelReason(), e.CreatedAt(), e.UpdatedAt(),
	}
}

func meetupLocation(e *exchange.Exchange) *string {
	if m := e.Meetup(); m != nil {
		loc := m.Location()
		return &loc
	}
	return nil
}

func meetupStart(e *exchange.Exchange) *time.Time {
	if m := e.Meetup(); m != nil {
		t := m.Start()
		return &t
	}
	return nil
}

func meetupEnd(e *exchange.Exchange) *time.Time {
	if m := e.Meetup(); m != nil {
		t := m.End()
		return &t
	}
	return nil
}
