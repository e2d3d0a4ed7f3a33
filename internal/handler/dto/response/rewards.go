package response

import (
	"time"

	"bookswap/internal/domain/rewards"
	"bookswap/internal/usecase/queries"
	"bookswap/internal/usecase/shared"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	UserID  uuid.UUID `json:"userId"`
	Balance int64     `json:"balance"`
}

type LedgerEntryResponse struct {
	ID         uuid.UUID  `json:"id"`
	Delta      int64      `json:"delta"`
	Reason     string     `json:"reason"`
	ExchangeID *uuid.UUID `json:"exchangeId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type BadgeResponse struct {
	Slug        string     `json:"slug"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Rarity      string     `json:"rarity"`
	Earned      bool       `json:"earned"`
	EarnedAt    *time.Time `json:"earnedAt,omitempty"`
}

type LevelResponse struct {
	Level        int    `json:"level"`
	Name         string `json:"name"`
	Balance      int64  `json:"balance"`
	PointsToNext int64  `json:"pointsToNext"`
}

type RewardResponse struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Cost      int64  `json:"cost"`
	Available bool   `json:"available"`
}

type RedemptionResponse struct {
	ID         uuid.UUID `json:"id"`
	RewardSlug string    `json:"rewardSlug"`
	Cost       int64     `json:"cost"`
	CreatedAt  time.Time `json:"createdAt"`
}

type LeaderboardEntryResponse struct {
	Rank        int       `json:"rank"`
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	TotalPoints int64     `json:"totalPoints"`
}

func FromBalanceView(rm *queries.BalanceView) *BalanceResponse {
	return &BalanceResponse{UserID: rm.UserID, Balance: rm.Balance}
}

func FromLedgerEntryView(rm *queries.LedgerEntryView) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:         rm.ID,
		Delta:      rm.Delta,
		Reason:     rm.Reason,
		ExchangeID: rm.ExchangeID,
		CreatedAt:  rm.CreatedAt,
	}
}

func FromBadgeView(rm *queries.BadgeView) *BadgeResponse {
	return &BadgeResponse{
		Slug:        rm.Slug,
		Name:        rm.Name,
		Description: rm.Description,
		Rarity:      rm.Rarity,
		Earned:      rm.Earned,
		EarnedAt:    rm.EarnedAt,
	}
}

func FromLevelView(rm *queries.LevelView) *LevelResponse {
	return &LevelResponse{
		Level:        rm.Level,
		Name:         rm.Name,
		Balance:      rm.Balance,
		PointsToNext: rm.PointsToNext,
	}
}

func FromReward(r rewards.Reward) *RewardResponse {
	return &RewardResponse{
		Slug:      r.Slug,
		Name:      r.Name,
		Cost:      r.Cost,
		Available: r.Available,
	}
}

func FromRedemption(r *shared.Redemption) *RedemptionResponse {
	return &RedemptionResponse{
		ID:         r.ID,
		RewardSlug: r.RewardSlug,
		Cost:       r.Cost,
		CreatedAt:  r.CreatedAt,
	}
}

func FromLeaderboardEntry(rm *queries.LeaderboardEntry) *LeaderboardEntryResponse {
	return &LeaderboardEntryResponse{
		Rank:        rm.Rank,
		UserID:      rm.UserID,
		DisplayName: rm.DisplayName,
		TotalPoints: rm.TotalPoints,
	}
}
