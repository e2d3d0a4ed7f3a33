//go:build unit

package rewards_test

import (
	"testing"

	"bookswap/internal/domain/rewards"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		level   int
		label   string
		gap     int64
	}{
		{"zero balance starts at level one", 0, 1, "Book Browser", 500},
		{"just below second threshold", 499, 1, "Book Browser", 1},
		{"second threshold", 500, 2, "Page Turner", 500},
		{"green reader with points toward next", 1240, 3, "Green Reader", 260},
		{"top level has no gap", 2500, 5, "Library Legend", 0},
		{"beyond top level", 9000, 5, "Library Legend", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, gap := rewards.LevelFor(tt.balance)
			assert.Equal(t, tt.level, level.Number)
			assert.Equal(t, tt.label, level.Name)
			assert.Equal(t, tt.gap, gap)
		})
	}
}

func TestNewlySatisfied(t *testing.T) {
	t.Run("grants first exchange badge on first completion", func(t *testing.T) {
		newly := rewards.NewlySatisfied(rewards.Metrics{CompletedExchanges: 1}, nil)
		require.Len(t, newly, 1)
		assert.Equal(t, "first-exchange", newly[0].Slug)
	})

	t.Run("already earned badges are not returned again", func(t *testing.T) {
		earned := map[string]bool{"first-exchange": true}
		newly := rewards.NewlySatisfied(rewards.Metrics{CompletedExchanges: 1}, earned)
		assert.Empty(t, newly)
	})

	t.Run("grants stay even when metrics would no longer qualify", func(t *testing.T) {
		earned := map[string]bool{"eco-warrior": true}
		newly := rewards.NewlySatisfied(rewards.Metrics{CO2SavedGrams: 0}, earned)
		assert.Empty(t, newly)
	})

	t.Run("multiple thresholds crossed at once", func(t *testing.T) {
		m := rewards.Metrics{CompletedExchanges: 5, CO2SavedGrams: 10_000}
		newly := rewards.NewlySatisfied(m, nil)

		slugs := make(map[string]bool)
		for _, b := range newly {
			slugs[b.Slug] = true
		}
		assert.True(t, slugs["first-exchange"])
		assert.True(t, slugs["eco-warrior"])
		assert.True(t, slugs["community-helper"])
		assert.False(t, slugs["book-collector"])
	})

	t.Run("speed reader counts the monthly window", func(t *testing.T) {
		m := rewards.Metrics{CompletedExchanges: 10, ExchangesThisMonth: 10}
		newly := rewards.NewlySatisfied(m, map[string]bool{
			"first-exchange":   true,
			"community-helper": true,
		})
		require.Len(t, newly, 1)
		assert.Equal(t, "speed-reader", newly[0].Slug)
	})
}

func TestFindReward(t *testing.T) {
	r, ok := rewards.FindReward("free-coffee")
	require.True(t, ok)
	assert.Equal(t, int64(150), r.Cost)
	assert.True(t, r.Available)

	r, ok = rewards.FindReward("kindle-e-reader")
	require.True(t, ok)
	assert.False(t, r.Available)

	_, ok = rewards.FindReward("unknown")
	assert.False(t, ok)
}
