package queries

import (
	"context"
	"time"

	"bookswap/internal/domain/rewards"
	"bookswap/internal/infra"
	"bookswap/internal/pkg/errs"

	"github.com/google/uuid"
)

type LedgerReadStore interface {
	// EntriesByUser returns the entry sequence in insertion order.
	EntriesByUser(ctx context.Context, userID uuid.UUID) ([]*LedgerEntryView, error)
	// BalanceOf sums all deltas for the user; this is always the canonical
	// balance, never a cached counter.
	BalanceOf(ctx context.Context, userID uuid.UUID) (int64, error)
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

type BadgeReadStore interface {
	EarnedBadges(ctx context.Context, userID uuid.UUID) (map[string]time.Time, error)
}

type RewardsQueries interface {
	BalanceOf(ctx context.Context, userID uuid.UUID) (*BalanceView, error)
	HistoryOf(ctx context.Context, userID uuid.UUID) ([]*LedgerEntryView, error)
	Badges(ctx context.Context, userID uuid.UUID) ([]*BadgeView, error)
	CurrentLevel(ctx context.Context, userID uuid.UUID) (*LevelView, error)
}

type rewardsQueriesImpl struct {
	ledger LedgerReadStore
	badges BadgeReadStore
}

func NewRewardsQueries(ledgerStore LedgerReadStore, badgeStore BadgeReadStore) RewardsQueries {
	return &rewardsQueriesImpl{ledger: ledgerStore, badges: badgeStore}
}

func (q *rewardsQueriesImpl) BalanceOf(ctx context.Context, userID uuid.UUID) (*BalanceView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	balance, err := q.ledger.BalanceOf(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to compute balance")
	}
	return &BalanceView{UserID: userID, Balance: balance}, nil
}

func (q *rewardsQueriesImpl) HistoryOf(ctx context.Context, userID uuid.UUID) ([]*LedgerEntryView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := q.ledger.EntriesByUser(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read ledger history")
	}
	return entries, nil
}

// Badges renders the global catalog with the user's earned status. Earned
// flags come from grant rows, so a badge stays earned even if the underlying
// metric later decreases.
func (q *rewardsQueriesImpl) Badges(ctx context.Context, userID uuid.UUID) ([]*BadgeView, error) {
	if err := q.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	earned, err := q.badges.EarnedBadges(ctx, userID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to read badge grants")
	}

	catalog := rewards.Catalog()
	views := make([]*BadgeView, 0, len(catalog))
	for _, b := range catalog {
		view := &BadgeView{
			Slug:        b.Slug,
			Name:        b.Name,
			Description: b.Description,
			Rarity:      string(b.Rarity),
		}
		if at, ok := earned[b.Slug]; ok {
			view.Earned = true
			t := at
			view.EarnedAt = &t
		}
		views = append(views, view)
	}
	return views, nil
}

func (q *rewardsQueriesImpl) CurrentLevel(ctx context.Context, userID uuid.UUID) (*LevelView, error) {
	balanceView, err := q.BalanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	level, gap := rewards.LevelFor(balanceView.Balance)
	return &LevelView{
		UserID:       userID,
		Level:        level.Number,
		Name:         level.Name,
		Balance:      balanceView.Balance,
		PointsToNext: gap,
	}, nil
}

func (q *rewardsQueriesImpl) requireUser(ctx context.Context, userID uuid.UUID) error {
	exists, err := q.ledger.UserExists(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrUserNotFound
		}
		return errs.Wrap(err, "failed to look up user")
	}
	if !exists {
		return errs.ErrUserNotFound
	}
	return nil
}
