//go:build unit

package qrtoken_test

import (
	"testing"
	"time"

	"bookswap/internal/pkg/qrtoken"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	svc := qrtoken.NewService("test-secret", time.Hour)
	exchangeID := uuid.New()
	partyID := uuid.New()

	token, err := svc.Generate(exchangeID, partyID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.True(t, svc.Verify(exchangeID, partyID, token))
}

func TestVerifyRejectsWrongBinding(t *testing.T) {
	svc := qrtoken.NewService("test-secret", time.Hour)
	exchangeID := uuid.New()
	partyID := uuid.New()

	token, err := svc.Generate(exchangeID, partyID)
	require.NoError(t, err)

	assert.False(t, svc.Verify(uuid.New(), partyID, token), "different exchange")
	assert.False(t, svc.Verify(exchangeID, uuid.New(), token), "different party")
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	svc := qrtoken.NewService("test-secret", time.Hour)
	exchangeID := uuid.New()
	partyID := uuid.New()

	token, err := svc.Generate(exchangeID, partyID)
	require.NoError(t, err)

	assert.False(t, svc.Verify(exchangeID, partyID, token+"x"))
	assert.False(t, svc.Verify(exchangeID, partyID, "not-a-jwt"))
	assert.False(t, svc.Verify(exchangeID, partyID, ""))
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuer := qrtoken.NewService("secret-a", time.Hour)
	verifier := qrtoken.NewService("secret-b", time.Hour)
	exchangeID := uuid.New()
	partyID := uuid.New()

	token, err := issuer.Generate(exchangeID, partyID)
	require.NoError(t, err)

	assert.False(t, verifier.Verify(exchangeID, partyID, token))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	svc := qrtoken.NewService("test-secret", -time.Minute)
	exchangeID := uuid.New()
	partyID := uuid.New()

	token, err := svc.Generate(exchangeID, partyID)
	require.NoError(t, err)

	assert.False(t, svc.Verify(exchangeID, partyID, token))
}
