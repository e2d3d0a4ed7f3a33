//go:build unit

package fake_test

import (
	"context"
	"testing"
	"time"

	"bookswap/internal/domain/ledger"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/shared"
	"bookswap/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendRejectsOverdraft(t *testing.T) {
	store := fake.NewStore()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	credit, err := ledger.NewEntry(userID, 100, ledger.ReasonBonus, nil, now)
	require.NoError(t, err)
	store.AddEntry(credit)

	err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		debit, err := ledger.NewEntry(userID, -150, ledger.ReasonRedemption, nil, now)
		require.NoError(t, err)
		return tx.Ledger().Append(ctx, debit)
	})
	assert.ErrorIs(t, err, errs.ErrInsufficientPoints)
	assert.Equal(t, int64(100), store.BalanceOf(userID))

	err = store.Within(context.Background(), func(ctx context.Context, tx shared.Tx) error {
		debit, err := ledger.NewEntry(userID, -100, ledger.ReasonRedemption, nil, now)
		require.NoError(t, err)
		return tx.Ledger().Append(ctx, debit)
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), store.BalanceOf(userID))
}
