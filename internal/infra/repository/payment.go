package repository

import (
	"context"

	"bookswap/internal/domain/exchange"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *exchange.PaymentRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO payments (id, exchange_id, amount_cents, method, status, attempt, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID(), p.ExchangeID(), p.Amount().Cents(), p.Method(),
		string(p.Status()), p.Attempt(), p.CreatedAt(),
	)
	if err != nil {
		return wrapQueryErr("failed to create payment record", err)
	}
	return nil
}

func (r *PaymentRepository) SettledByExchangeID(ctx context.Context, exchangeID uuid.UUID) (bool, error) {
	var settled bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE exchange_id = $1 AND status = 'settled')`,
		exchangeID,
	).Scan(&settled)
	if err != nil {
		return false, wrapQueryErr("failed to check settled payment", err)
	}
	return settled, nil
}

func (r *PaymentRepository) AttemptCount(ctx context.Context, exchangeID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM payments WHERE exchange_id = $1`,
		exchangeID,
	).Scan(&count)
	if err != nil {
		return 0, wrapQueryErr("failed to count payment attempts", err)
	}
	return count, nil
}
