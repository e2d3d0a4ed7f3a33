//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"bookswap/internal/domain/ledger"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/keymutex"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/shared"
	"bookswap/tests/common/fake"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewardsFixture struct {
	store    *fake.Store
	commands commands.RewardsCommands
	clock    *clock.MockClock
	userID   uuid.UUID
}

func newRewardsFixture(t *testing.T) *rewardsFixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := fake.NewStore()
	mockClock := clock.NewMockClock(now)

	userID := uuid.New()
	store.AddUser(&shared.UserSnapshot{
		ID:          userID,
		DisplayName: "Maya Chen",
		CreatedAt:   now.AddDate(0, -6, 0),
	})

	return &rewardsFixture{
		store:    store,
		commands: commands.NewRewardsCommands(store, keymutex.New(), mockClock),
		clock:    mockClock,
		userID:   userID,
	}
}

func (f *rewardsFixture) credit(t *testing.T, delta int64) {
	t.Helper()
	e, err := ledger.NewEntry(f.userID, delta, ledger.ReasonBonus, nil, f.clock.Now())
	require.NoError(t, err)
	f.store.AddEntry(e)
}

func TestRedeem(t *testing.T) {
	t.Run("deducts the cost and records a receipt", func(t *testing.T) {
		f := newRewardsFixture(t)
		f.credit(t, 200)

		receipt, err := f.commands.Redeem(context.Background(), f.userID, "free-coffee")
		require.NoError(t, err)
		assert.Equal(t, "free-coffee", receipt.RewardSlug)
		assert.Equal(t, int64(150), receipt.Cost)
		assert.Equal(t, int64(50), f.store.BalanceOf(f.userID))
	})

	t.Run("insufficient balance leaves the ledger untouched", func(t *testing.T) {
		f := newRewardsFixture(t)
		f.credit(t, 149)

		_, err := f.commands.Redeem(context.Background(), f.userID, "free-coffee")
		assert.ErrorIs(t, err, errs.ErrInsufficientPoints)
		assert.Equal(t, int64(149), f.store.BalanceOf(f.userID))
		assert.Empty(t, f.store.Redemptions)
	})

	t.Run("unaffordable reward reports insufficient points even when unavailable", func(t *testing.T) {
		f := newRewardsFixture(t)
		f.credit(t, 1240)

		_, err := f.commands.Redeem(context.Background(), f.userID, "kindle-e-reader")
		assert.ErrorIs(t, err, errs.ErrInsufficientPoints)
		assert.Equal(t, int64(1240), f.store.BalanceOf(f.userID))

		receipt, err := f.commands.Redeem(context.Background(), f.userID, "signed-book")
		require.NoError(t, err)
		assert.Equal(t, int64(800), receipt.Cost)
		assert.Equal(t, int64(440), f.store.BalanceOf(f.userID))
	})

	t.Run("unavailable rewards cannot be redeemed regardless of balance", func(t *testing.T) {
		f := newRewardsFixture(t)
		f.credit(t, 5000)

		_, err := f.commands.Redeem(context.Background(), f.userID, "kindle-e-reader")
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unknown reward", func(t *testing.T) {
		f := newRewardsFixture(t)

		_, err := f.commands.Redeem(context.Background(), f.userID, "time-machine")
		assert.ErrorIs(t, err, errs.ErrRewardNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newRewardsFixture(t)

		_, err := f.commands.Redeem(context.Background(), uuid.New(), "free-coffee")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("concurrent redemptions cannot overdraw", func(t *testing.T) {
		f := newRewardsFixture(t)
		f.credit(t, 150)

		var wg sync.WaitGroup
		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.commands.Redeem(context.Background(), f.userID, "free-coffee")
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		var succeeded, rejected int
		for err := range results {
			switch {
			case err == nil:
				succeeded++
			default:
				assert.ErrorIs(t, err, errs.ErrInsufficientPoints)
				rejected++
			}
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, rejected)
		assert.Equal(t, int64(0), f.store.BalanceOf(f.userID))
	})
}

func TestEvaluateBadges(t *testing.T) {
	t.Run("fresh user earns nothing", func(t *testing.T) {
		f := newRewardsFixture(t)

		newly, err := f.commands.EvaluateBadges(context.Background(), f.userID)
		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("first completed exchange grants the badge once", func(t *testing.T) {
		f := newExchangeFixture(t)
		rewardsCommands := commands.NewRewardsCommands(f.store, keymutex.New(), f.clock)

		e := f.paid(t)
		_, err := f.confirm(t, e.ID(), f.buyerID)
		require.NoError(t, err)
		_, err = f.confirm(t, e.ID(), f.ownerID)
		require.NoError(t, err)

		newly, err := rewardsCommands.EvaluateBadges(context.Background(), f.buyerID)
		require.NoError(t, err)
		require.Len(t, newly, 1)
		assert.Equal(t, "first-exchange", newly[0].Slug)

		// Re-evaluating without new activity grants nothing
		newly, err = rewardsCommands.EvaluateBadges(context.Background(), f.buyerID)
		require.NoError(t, err)
		assert.Empty(t, newly)
	})

	t.Run("eco warrior follows accumulated CO2 savings", func(t *testing.T) {
		f := newRewardsFixture(t)
		heavyUser := uuid.New()
		f.store.AddUser(&shared.UserSnapshot{
			ID:            heavyUser,
			DisplayName:   "Avery Brooks",
			CO2SavedGrams: 12_000,
			CreatedAt:     f.clock.Now().AddDate(-1, 0, 0),
		})

		newly, err := f.commands.EvaluateBadges(context.Background(), heavyUser)
		require.NoError(t, err)

		slugs := make(map[string]bool)
		for _, b := range newly {
			slugs[b.Slug] = true
		}
		assert.True(t, slugs["eco-warrior"])
		assert.False(t, slugs["green-champion"])
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newRewardsFixture(t)

		_, err := f.commands.EvaluateBadges(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})
}
