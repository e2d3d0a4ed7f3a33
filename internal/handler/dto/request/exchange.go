package request

import (
	"time"

	"github.com/google/uuid"
)

type RequestExchangeRequest struct {
	BookID uuid.UUID `json:"book_id" binding:"required"`
}

type ScheduleMeetupRequest struct {
	Location string    `json:"location" binding:"required"`
	Start    time.Time `json:"start" binding:"required"`
	End      time.Time `json:"end" binding:"required"`
}

type SubmitPaymentRequest struct {
	Method      string `json:"method" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required"`
}

type PresentConfirmationRequest struct {
	Token string `json:"token" binding:"required"`
}

type CancelExchangeRequest struct {
	Reason string `json:"reason"`
}
