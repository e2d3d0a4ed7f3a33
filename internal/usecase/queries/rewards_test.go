//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"bookswap/internal/pkg/errs"
	"bookswap/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedgerStore struct {
	entries map[uuid.UUID][]*queries.LedgerEntryView
}

func (s *stubLedgerStore) EntriesByUser(_ context.Context, userID uuid.UUID) ([]*queries.LedgerEntryView, error) {
	return s.entries[userID], nil
}

func (s *stubLedgerStore) BalanceOf(_ context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	for _, e := range s.entries[userID] {
		total += e.Delta
	}
	return total, nil
}

func (s *stubLedgerStore) UserExists(_ context.Context, userID uuid.UUID) (bool, error) {
	_, ok := s.entries[userID]
	return ok, nil
}

type stubBadgeStore struct {
	earned map[uuid.UUID]map[string]time.Time
}

func (s *stubBadgeStore) EarnedBadges(_ context.Context, userID uuid.UUID) (map[string]time.Time, error) {
	return s.earned[userID], nil
}

func seedEntries(userID uuid.UUID, deltas ...int64) *stubLedgerStore {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var views []*queries.LedgerEntryView
	for i, d := range deltas {
		reason := "exchange_completed"
		if d < 0 {
			reason = "redemption"
		}
		views = append(views, &queries.LedgerEntryView{
			ID:        uuid.New(),
			UserID:    userID,
			Delta:     d,
			Reason:    reason,
			CreatedAt: now.Add(time.Duration(i) * time.Minute),
		})
	}
	return &stubLedgerStore{entries: map[uuid.UUID][]*queries.LedgerEntryView{userID: views}}
}

func TestBalanceOf(t *testing.T) {
	userID := uuid.New()
	q := queries.NewRewardsQueries(seedEntries(userID, 100, 40, -150), &stubBadgeStore{})

	view, err := q.BalanceOf(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), view.Balance)

	_, err = q.BalanceOf(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
}

func TestHistoryOf(t *testing.T) {
	userID := uuid.New()
	q := queries.NewRewardsQueries(seedEntries(userID, 100, 40), &stubBadgeStore{})

	history, err := q.HistoryOf(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(100), history[0].Delta)
	assert.Equal(t, int64(40), history[1].Delta)
}

func TestBadges(t *testing.T) {
	userID := uuid.New()
	earnedAt := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	badgeStore := &stubBadgeStore{earned: map[uuid.UUID]map[string]time.Time{
		userID: {"first-exchange": earnedAt},
	}}
	q := queries.NewRewardsQueries(seedEntries(userID, 140), badgeStore)

	views, err := q.Badges(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, views, 6)

	byslug := make(map[string]*queries.BadgeView)
	for _, v := range views {
		byslug[v.Slug] = v
	}
	require.Contains(t, byslug, "first-exchange")
	assert.True(t, byslug["first-exchange"].Earned)
	require.NotNil(t, byslug["first-exchange"].EarnedAt)
	assert.Equal(t, earnedAt, *byslug["first-exchange"].EarnedAt)

	assert.False(t, byslug["eco-warrior"].Earned)
	assert.Nil(t, byslug["eco-warrior"].EarnedAt)
}

func TestCurrentLevel(t *testing.T) {
	userID := uuid.New()
	q := queries.NewRewardsQueries(seedEntries(userID, 1000, 240), &stubBadgeStore{})

	view, err := q.CurrentLevel(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, view.Level)
	assert.Equal(t, "Green Reader", view.Name)
	assert.Equal(t, int64(1240), view.Balance)
	assert.Equal(t, int64(260), view.PointsToNext)
}
