package commands

import (
	"context"
	"time"

	"bookswap/internal/domain/ledger"
	"bookswap/internal/domain/rewards"
	"bookswap/internal/pkg/clock"
	"bookswap/internal/pkg/errs"
	"bookswap/internal/pkg/keymutex"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type RewardsCommands interface {
	// Redeem spends points for a catalog reward. The balance check and the
	// negative ledger append are atomic; two concurrent redemptions against
	// the same near-exhausted balance cannot both succeed.
	Redeem(ctx context.Context, userID uuid.UUID, rewardSlug string) (*shared.Redemption, error)
	// EvaluateBadges grants and returns badges newly satisfied by the user's
	// current metrics. Idempotent: a second call with no intervening ledger
	// change returns nothing new.
	EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]rewards.Badge, error)
}

type rewardsCommandsImpl struct {
	uow   shared.UnitOfWork
	locks *keymutex.KeyMutex
	clock clock.Clock
}

func NewRewardsCommands(uow shared.UnitOfWork, locks *keymutex.KeyMutex, clk clock.Clock) RewardsCommands {
	return &rewardsCommandsImpl{
		uow:   uow,
		locks: locks,
		clock: clk,
	}
}

func (c *rewardsCommandsImpl) Redeem(ctx context.Context, userID uuid.UUID, rewardSlug string) (*shared.Redemption, error) {
	c.locks.Lock(userKey(userID))
	defer c.locks.Unlock(userKey(userID))

	reward, ok := rewards.FindReward(rewardSlug)
	if !ok {
		return nil, errs.ErrRewardNotFound
	}

	var receipt *shared.Redemption
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Users().FindByID(ctx, userID); err != nil {
			return mapNotFound(err, errs.ErrUserNotFound)
		}

		// Affordability is checked before availability: a reward the user
		// cannot pay for surfaces as insufficient points even when it is also
		// not yet redeemable.
		balance, err := tx.Ledger().BalanceOf(ctx, userID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if balance < reward.Cost {
			return errs.ErrInsufficientPoints
		}
		if !reward.Available {
			return errs.Mark(errs.New("reward not yet available"), errs.ErrValidation)
		}

		now := c.clock.Now()
		entry, err := ledger.NewEntry(userID, -reward.Cost, ledger.ReasonRedemption, nil, now)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if err := tx.Ledger().Append(ctx, entry); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		receipt = &shared.Redemption{
			ID:         uuid.New(),
			UserID:     userID,
			RewardSlug: reward.Slug,
			Cost:       reward.Cost,
			CreatedAt:  now,
		}
		return tx.Redemptions().Create(ctx, receipt)
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *rewardsCommandsImpl) EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]rewards.Badge, error) {
	var newly []rewards.Badge
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		metrics, err := c.collectMetrics(ctx, tx, userID)
		if err != nil {
			return err
		}

		earned, err := tx.Badges().EarnedSlugs(ctx, userID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		newly = rewards.NewlySatisfied(metrics, earned)
		now := c.clock.Now()
		for _, b := range newly {
			if err := tx.Badges().Grant(ctx, userID, b.Slug, now); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newly, nil
}

func (c *rewardsCommandsImpl) collectMetrics(ctx context.Context, tx shared.Tx, userID uuid.UUID) (rewards.Metrics, error) {
	user, err := tx.Users().FindByID(ctx, userID)
	if err != nil {
		return rewards.Metrics{}, mapNotFound(err, errs.ErrUserNotFound)
	}

	total, err := tx.Exchanges().CompletedCountByParticipant(ctx, userID)
	if err != nil {
		return rewards.Metrics{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	now := c.clock.Now()
	monthAgo := now.AddDate(0, -1, 0)
	thisMonth, err := tx.Exchanges().CompletedCountByParticipantSince(ctx, userID, monthAgo)
	if err != nil {
		return rewards.Metrics{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	balance, err := tx.Ledger().BalanceOf(ctx, userID)
	if err != nil {
		return rewards.Metrics{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return rewards.Metrics{
		CompletedExchanges: total,
		ExchangesThisMonth: thisMonth,
		CO2SavedGrams:      user.CO2SavedGrams,
		Balance:            balance,
		MonthsActive:       monthsBetween(user.CreatedAt, now),
	}, nil
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
