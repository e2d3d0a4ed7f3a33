package response

import (
	"time"

	"bookswap/internal/domain/exchange"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExchangeResponse struct {
	ID              uuid.UUID           `json:"id"`
	BookID          uuid.UUID           `json:"bookId"`
	BookTitle       string              `json:"bookTitle,omitempty"`
	InitiatorID     uuid.UUID           `json:"initiatorId"`
	CounterpartyID  *uuid.UUID          `json:"counterpartyId,omitempty"`
	PriceCents      int64               `json:"priceCents"`
	ServiceFeeCents int64               `json:"serviceFeeCents"`
	TotalCents      int64               `json:"totalCents"`
	State           string              `json:"state"`
	MeetupLocation  *string             `json:"meetupLocation,omitempty"`
	MeetupStart     *time.Time          `json:"meetupStart,omitempty"`
	MeetupEnd       *time.Time          `json:"meetupEnd,omitempty"`
	CancelReason    *string             `json:"cancelReason,omitempty"`
	History         []StateChangeItem   `json:"history,omitempty"`
	Payments        []PaymentResponse   `json:"payments,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

type StateChangeItem struct {
	State      string    `json:"state"`
	OccurredAt time.Time `json:"occurredAt"`
}

type PaymentResponse struct {
	ID          uuid.UUID `json:"id"`
	ExchangeID  uuid.UUID `json:"exchangeId"`
	AmountCents int64     `json:"amountCents"`
	Method      string    `json:"method"`
	Status      string    `json:"status"`
	Attempt     int       `json:"attempt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ExchangeListResponse struct {
	ID        uuid.UUID `json:"id"`
	BookID    uuid.UUID `json:"bookId"`
	BookTitle string    `json:"bookTitle"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdAt"`
}

type ConfirmationTokenResponse struct {
	Token string `json:"token"`
}

func FromExchangeEntity(e *exchange.Exchange) *ExchangeResponse {
	resp := &ExchangeResponse{
		ID:              e.ID(),
		BookID:          e.BookID(),
		InitiatorID:     e.InitiatorID(),
		CounterpartyID:  e.CounterpartyID(),
		PriceCents:      e.Price().Cents(),
		ServiceFeeCents: e.ServiceFee().Cents(),
		TotalCents:      e.RequiredPayment().Cents(),
		State:           e.State().String(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
	if m := e.Meetup(); m != nil {
		loc := m.Location()
		start := m.Start()
		end := m.End()
		resp.MeetupLocation = &loc
		resp.MeetupStart = &start
		resp.MeetupEnd = &end
	}
	if reason := e.CancelReason(); reason != "" {
		resp.CancelReason = &reason
	}
	for _, change := range e.History() {
		resp.History = append(resp.History, StateChangeItem{
			State:      change.State.String(),
			OccurredAt: change.OccurredAt,
		})
	}
	return resp
}

func FromExchangeView(rm *queries.ExchangeView) *ExchangeResponse {
	resp := &ExchangeResponse{
		ID:              rm.ID,
		BookID:          rm.BookID,
		BookTitle:       rm.BookTitle,
		InitiatorID:     rm.InitiatorID,
		CounterpartyID:  rm.CounterpartyID,
		PriceCents:      rm.PriceCents,
		ServiceFeeCents: rm.ServiceFeeCents,
		TotalCents:      rm.PriceCents + rm.ServiceFeeCents,
		State:           rm.State,
		MeetupLocation:  rm.MeetupLocation,
		MeetupStart:     rm.MeetupStart,
		MeetupEnd:       rm.MeetupEnd,
		CancelReason:    rm.CancelReason,
		CreatedAt:       rm.CreatedAt,
		UpdatedAt:       rm.UpdatedAt,
	}
	for _, change := range rm.History {
		resp.History = append(resp.History, StateChangeItem{
			State:      change.State,
			OccurredAt: change.OccurredAt,
		})
	}
	for _, p := range rm.Payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:          p.ID,
			ExchangeID:  p.ExchangeID,
			AmountCents: p.AmountCents,
			Method:      p.Method,
			Status:      p.Status,
			Attempt:     p.Attempt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return resp
}

func FromExchangeListItem(rm *queries.ExchangeListItem) *ExchangeListResponse {
	return &ExchangeListResponse{
		ID:        rm.ID,
		BookID:    rm.BookID,
		BookTitle: rm.BookTitle,
		State:     rm.State,
		CreatedAt: rm.CreatedAt,
	}
}

func FromPaymentRecord(p *exchange.PaymentRecord) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID(),
		ExchangeID:  p.ExchangeID(),
		AmountCents: p.Amount().Cents(),
		Method:      p.Method(),
		Status:      p.Status().String(),
		Attempt:     p.Attempt(),
		CreatedAt:   p.CreatedAt(),
	}
}
