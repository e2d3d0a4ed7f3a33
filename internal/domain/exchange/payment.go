package exchange

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrPaymentImmutable = errors.New("settled payment cannot be modified")

// PaymentRecord is one checkout attempt against an exchange. Records are
// immutable once settled; a failed attempt stays in history and the caller
// retries with a fresh record.
type PaymentRecord struct {
	id         uuid.UUID
	exchangeID uuid.UUID
	amount     Money
	method     string
	status     PaymentStatus
	attempt    int
	createdAt  time.Time
}

func NewPaymentRecord(exchangeID uuid.UUID, amount Money, method string, status PaymentStatus, attempt int, now time.Time) *PaymentRecord {
	return &PaymentRecord{
		id:         uuid.New(),
		exchangeID: exchangeID,
		amount:     amount,
		method:     method,
		status:     status,
		attempt:    attempt,
		createdAt:  now,
	}
}

func ReconstructPaymentRecord(id, exchangeID uuid.UUID, amount Money, method string, status PaymentStatus, attempt int, createdAt time.Time) *PaymentRecord {
	return &PaymentRecord{
		id:         id,
		exchangeID: exchangeID,
		amount:     amount,
		method:     method,
		status:     status,
		attempt:    attempt,
		createdAt:  createdAt,
	}
}

func (p *PaymentRecord) IsSettled() bool {
	return p.status == PaymentSettled
}

func (p *PaymentRecord) ID() uuid.UUID         { return p.id }
func (p *PaymentRecord) ExchangeID() uuid.UUID { return p.exchangeID }
func (p *PaymentRecord) Amount() Money         { return p.amount }
func (p *PaymentRecord) Method() string        { return p.method }
func (p *PaymentRecord) Status() PaymentStatus { return p.status }
func (p *PaymentRecord) Attempt() int          { return p.attempt }
func (p *PaymentRecord) CreatedAt() time.Time  { return p.createdAt }
