package readstore

import (
	"context"
	"time"

	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ExchangeReadStore struct {
	pool *pgxpool.Pool
}

func NewExchangeReadStore(pool *pgxpool.Pool) *ExchangeReadStore {
	return &ExchangeReadStore{pool: pool}
}

func (s *ExchangeReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ExchangeView, error) {
	var view queries.ExchangeView
	err := s.pool.QueryRow(ctx, `
		SELECT e.id, e.book_id, b.title, e.initiator_id, e.counterparty_id,
		       e.price_cents, e.service_fee_cents, e.state,
		       e.meetup_location, e.meetup_start, e.meetup_end,
		       e.cancel_reason, e.created_at, e.updated_at
		FROM exchanges e
		JOIN books b ON b.id = e.book_id
		WHERE e.id = $1`, id,
	).Scan(
		&view.ID, &view.BookID, &view.BookTitle, &view.InitiatorID, &view.CounterpartyID,
		&view.PriceCents, &view.ServiceFeeCents, &view.State,
		&view.MeetupLocation, &view.MeetupStart, &view.MeetupEnd,
		&view.CancelReason, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, wrapReadErr("failed to find exchange view", err)
	}
	if view.CancelReason != nil && *view.CancelReason == "" {
		view.CancelReason = nil
	}

	history, err := s.loadHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	view.History = history

	payments, err := s.loadPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Payments = payments

	return &view, nil
}

func (s *ExchangeReadStore) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*queries.ExchangeListItem, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT e.id, e.book_id, b.title, e.state, e.created_at
		FROM exchanges e
		JOIN books b ON b.id = e.book_id
		WHERE e.initiator_id = $1 OR e.counterparty_id = $1
		ORDER BY e.created_at DESC`, userID)
	if err != nil {
		return nil, wrapReadErr("failed to list exchanges", err)
	}
	defer rows.Close()

	items := []*queries.ExchangeListItem{}
	for rows.Next() {
		var item queries.ExchangeListItem
		if err := rows.Scan(&item.ID, &item.BookID, &item.BookTitle, &item.State, &item.CreatedAt); err != nil {
			return nil, wrapReadErr("failed to scan exchange list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read exchange list", err)
	}
	return items, nil
}

func (s *ExchangeReadStore) loadHistory(ctx context.Context, exchangeID uuid.UUID) ([]queries.StateChangeView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT state, occurred_at FROM exchange_events
		WHERE exchange_id = $1
		ORDER BY occurred_at, state`, exchangeID)
	if err != nil {
		return nil, wrapReadErr("failed to load exchange history", err)
	}
	defer rows.Close()

	history := []queries.StateChangeView{}
	for rows.Next() {
		var (
			state      string
			occurredAt time.Time
		)
		if err := rows.Scan(&state, &occurredAt); err != nil {
			return nil, wrapReadErr("failed to scan state change", err)
		}
		history = append(history, queries.StateChangeView{State: state, OccurredAt: occurredAt})
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read exchange history", err)
	}
	return history, nil
}

func (s *ExchangeReadStore) loadPayments(ctx context.Context, exchangeID uuid.UUID) ([]queries.PaymentView, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, exchange_id, amount_cents, method, status, attempt, created_at
		FROM payments
		WHERE exchange_id = $1
		ORDER BY attempt`, exchangeID)
	if err != nil {
		return nil, wrapReadErr("failed to load payments", err)
	}
	defer rows.Close()

	payments := []queries.PaymentView{}
	for rows.Next() {
		var p queries.PaymentView
		if err := rows.Scan(&p.ID, &p.ExchangeID, &p.AmountCents, &p.Method, &p.Status, &p.Attempt, &p.CreatedAt); err != nil {
			return nil, wrapReadErr("failed to scan payment", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr("failed to read payments", err)
	}
	return payments, nil
}
