package queries

import (
	"context"

	"bookswap/internal/infra"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/qrtoken"

	"github.com/google/uuid"
)

type ExchangeReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExchangeView, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*ExchangeListItem, error)
}

type BookReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	ListAvailable(ctx context.Context, limit int) ([]*BookView, error)
}

type ExchangeQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ExchangeView, error)
	ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*ExchangeListItem, error)
	// ConfirmationToken issues the opaque token a party renders as a QR code.
	// Only participants of the exchange may obtain one.
	ConfirmationToken(ctx context.Context, exchangeID, partyID uuid.UUID) (string, error)
}

type BookQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookView, error)
	ListAvailable(ctx context.Context, limit int) ([]*BookView, error)
}

type exchangeQueriesImpl struct {
	store  ExchangeReadStore
	tokens *qrtoken.Service
}

func NewExchangeQueries(store ExchangeReadStore, tokens *qrtoken.Service) ExchangeQueries {
	return &exchangeQueriesImpl{store: store, tokens: tokens}
}

func (q *exchangeQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ExchangeView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrExchangeNotFound
		}
		return nil, errs.Wrap(err, "failed to find exchange")
	}
	return view, nil
}

func (q *exchangeQueriesImpl) ListByParticipant(ctx context.Context, userID uuid.UUID) ([]*ExchangeListItem, error) {
	items, err := q.store.ListByParticipant(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list exchanges")
	}
	return items, nil
}

func (q *exchangeQueriesImpl) ConfirmationToken(ctx context.Context, exchangeID, partyID uuid.UUID) (string, error) {
	view, err := q.GetByID(ctx, exchangeID)
	if err != nil {
		return "", err
	}

	participant := view.InitiatorID == partyID ||
		(view.CounterpartyID != nil && *view.CounterpartyID == partyID)
	if !participant {
		return "", errs.Mark(errs.New("party is not part of this exchange"), errs.ErrValidation)
	}

	token, err := q.tokens.Generate(exchangeID, partyID)
	if err != nil {
		return "", errs.Wrap(err, "failed to generate confirmation token")
	}
	return token, nil
}

type bookQueriesImpl struct {
	store BookReadStore
}

func NewBookQueries(store BookReadStore) BookQueries {
	return &bookQueriesImpl{store: store}
}

func (q *bookQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrBookNotFound
		}
		return nil, errs.Wrap(err, "failed to find book")
	}
	return view, nil
}

func (q *bookQueriesImpl) ListAvailable(ctx context.Context, limit int) ([]*BookView, error) {
	if limit <= 0 {
		limit = 50
	}
	views, err := q.store.ListAvailable(ctx, limit)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list books")
	}
	return views, nil
}
