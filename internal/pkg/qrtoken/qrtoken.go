// Package qrtoken issues the opaque confirmation tokens each party presents
// at the meetup. Tokens are signed JWTs carrying the exchange and party ids;
// rendering them as a scannable code is the presentation layer's concern.
package qrtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid confirmation token")
	ErrExpiredToken = errors.New("confirmation token expired")
)

type Claims struct {
	ExchangeID uuid.UUID `json:"exchange_id"`
	PartyID    uuid.UUID `json:"party_id"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
}

func NewService(secretKey string, ttl time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       ttl,
	}
}

func (s *Service) Generate(exchangeID, partyID uuid.UUID) (string, error) {
	now := time.Now()
	claims := Claims{
		ExchangeID: exchangeID,
		PartyID:    partyID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Subject:   partyID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// Verify reports whether tokenString is a live token bound to exactly this
// exchange and party.
func (s *Service) Verify(exchangeID, partyID uuid.UUID, tokenString string) bool {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return false
	}
	return claims.ExchangeID == exchangeID && claims.PartyID == partyID
}
