package api

import (
	"net/http"

	"bookswap/internal/domain/rewards"
	reqdto "bookswap/internal/handler/dto/request"
	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/handler/middleware"
	"bookswap/internal/usecase/commands"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RewardsHandler struct {
	commands commands.RewardsCommands
	queries  queries.RewardsQueries
}

func NewRewardsHandler(cmds commands.RewardsCommands, qs queries.RewardsQueries) *RewardsHandler {
	return &RewardsHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Get balance
// @Description Get the calling user's point balance
// @Tags rewards
// @Produce json
// @Success 200 {object} resdto.BalanceResponse
// @Failure 404 {object} map[string]string
// @Router /rewards/balance [get]
func (h *RewardsHandler) Balance(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.queries.BalanceOf(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBalanceView(view))
}

// @Summary Get point history
// @Description Get the calling user's ledger entries in order
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.LedgerEntryResponse
// @Failure 404 {object} map[string]string
// @Router /rewards/history [get]
func (h *RewardsHandler) History(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	entries, err := h.queries.HistoryOf(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.LedgerEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = resdto.FromLedgerEntryView(e)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get badges
// @Description Get the badge catalog with the calling user's earned status
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.BadgeResponse
// @Failure 404 {object} map[string]string
// @Router /rewards/badges [get]
func (h *RewardsHandler) Badges(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	views, err := h.queries.Badges(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.BadgeResponse, len(views))
	for i, v := range views {
		resp[i] = resdto.FromBadgeView(v)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Evaluate badges
// @Description Grant any badges newly satisfied by the user's current metrics
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.BadgeResponse
// @Failure 404 {object} map[string]string
// @Router /rewards/badges/evaluate [post]
func (h *RewardsHandler) EvaluateBadges(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	newly, err := h.commands.EvaluateBadges(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.BadgeResponse, len(newly))
	for i, b := range newly {
		resp[i] = &resdto.BadgeResponse{
			Slug:        b.Slug,
			Name:        b.Name,
			Description: b.Description,
			Rarity:      string(b.Rarity),
			Earned:      true,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Get level
// @Description Get the calling user's level derived from their balance
// @Tags rewards
// @Produce json
// @Success 200 {object} resdto.LevelResponse
// @Failure 404 {object} map[string]string
// @Router /rewards/level [get]
func (h *RewardsHandler) Level(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.queries.CurrentLevel(c.Request.Context(), userID)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLevelView(view))
}

// @Summary List rewards
// @Description List the redeemable reward catalog
// @Tags rewards
// @Produce json
// @Success 200 {array} resdto.RewardResponse
// @Router /rewards/catalog [get]
func (h *RewardsHandler) Catalog(c *gin.Context) {
	catalog := rewards.RewardCatalog()
	resp := make([]*resdto.RewardResponse, len(catalog))
	for i, r := range catalog {
		resp[i] = resdto.FromReward(r)
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Redeem reward
// @Description Spend points on a catalog reward
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body reqdto.RedeemRewardRequest true "Reward to redeem"
// @Success 201 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rewards/redemptions [post]
func (h *RewardsHandler) Redeem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req reqdto.RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.commands.Redeem(c.Request.Context(), userID, req.RewardSlug)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRedemption(receipt))
}

func (h *RewardsHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return uuid.Nil, false
	}
	return userID, true
}
