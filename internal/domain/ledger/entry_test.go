//go:build unit

package ledger_test

import (
	"testing"
	"time"

	"bookswap/internal/domain/ledger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	t.Run("accepts positive delta", func(t *testing.T) {
		e, err := ledger.NewEntry(userID, 100, ledger.ReasonExchangeCompleted, nil, now)
		require.NoError(t, err)
		assert.Equal(t, int64(100), e.Delta)
		assert.NotEqual(t, uuid.Nil, e.ID)
	})

	t.Run("accepts negative delta only for redemption", func(t *testing.T) {
		_, err := ledger.NewEntry(userID, -150, ledger.ReasonRedemption, nil, now)
		assert.NoError(t, err)

		_, err = ledger.NewEntry(userID, -150, ledger.ReasonExchangeCompleted, nil, now)
		assert.ErrorIs(t, err, ledger.ErrNegativeDelta)

		_, err = ledger.NewEntry(userID, -150, ledger.ReasonBonus, nil, now)
		assert.ErrorIs(t, err, ledger.ErrNegativeDelta)
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		_, err := ledger.NewEntry(userID, 0, ledger.ReasonBonus, nil, now)
		assert.ErrorIs(t, err, ledger.ErrZeroDelta)
	})

	t.Run("rejects unknown reason", func(t *testing.T) {
		_, err := ledger.NewEntry(userID, 10, ledger.Reason("gift"), nil, now)
		assert.ErrorIs(t, err, ledger.ErrInvalidReason)
	})
}

func TestBalanceIsSumOfDeltas(t *testing.T) {
	userID := uuid.New()
	now := time.Now()

	var entries []ledger.Entry
	for _, delta := range []int64{100, 40, 1100, -150} {
		reason := ledger.ReasonExchangeCompleted
		if delta < 0 {
			reason = ledger.ReasonRedemption
		}
		e, err := ledger.NewEntry(userID, delta, reason, nil, now)
		require.NoError(t, err)
		entries = append(entries, e)
	}

	assert.Equal(t, int64(1090), ledger.Balance(entries))
	assert.Equal(t, int64(0), ledger.Balance(nil))
}
