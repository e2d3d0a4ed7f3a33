// Package gateway holds the narrow interfaces to external collaborators. The
// core never embeds gateway-specific protocol details; it only consumes the
// authorize capability.
package gateway

import (
	"context"

	"bookswap/internal/domain/exchange"
)

// PaymentGateway settles or declines a checkout amount. Implementations must
// return a definite outcome; asynchronous settlement protocols live behind
// this boundary, outside the core.
type PaymentGateway interface {
	Authorize(ctx context.Context, amountCents int64, method string) (exchange.PaymentStatus, error)
}

// LocalGateway is the in-process implementation used outside production
// integrations. It settles every supported payment method and declines the
// rest, deterministically.
type LocalGateway struct{}

func NewLocalGateway() PaymentGateway {
	return &LocalGateway{}
}

var supportedMethods = map[string]bool{
	"stripe": true,
	"paypal": true,
	"card":   true,
}

func (g *LocalGateway) Authorize(_ context.Context, amountCents int64, method string) (exchange.PaymentStatus, error) {
	if amountCents <= 0 || !supportedMethods[method] {
		return exchange.PaymentFailed, nil
	}
	return exchange.PaymentSettled, nil
}
