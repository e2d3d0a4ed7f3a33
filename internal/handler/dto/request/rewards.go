package request

type RedeemRewardRequest struct {
	RewardSlug string `json:"reward_slug" binding:"required"`
}
