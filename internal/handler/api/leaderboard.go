package api

import (
	"net/http"
	"strconv"

	resdto "bookswap/internal/handler/dto/response"
	"bookswap/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	queries queries.LeaderboardQueries
}

func NewLeaderboardHandler(qs queries.LeaderboardQueries) *LeaderboardHandler {
	return &LeaderboardHandler{queries: qs}
}

// @Summary Get leaderboard
// @Description Rank users by total points from the ledger
// @Tags leaderboard
// @Produce json
// @Param top query int false "Number of entries" default(10)
// @Success 200 {array} resdto.LeaderboardEntryResponse
// @Router /leaderboard [get]
func (h *LeaderboardHandler) Rank(c *gin.Context) {
	top := 0
	if raw := c.Query("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid top parameter"})
			return
		}
		top = parsed
	}

	entries, err := h.queries.Rank(c.Request.Context(), top)
	if err != nil {
		respondUsecaseError(c, err)
		return
	}

	resp := make([]*resdto.LeaderboardEntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = resdto.FromLeaderboardEntry(e)
	}
	c.JSON(http.StatusOK, resp)
}
