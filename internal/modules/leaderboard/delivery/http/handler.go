package http

import (
	"net/http"
	"strconv"

	leaderboardService "desideri.com/pugliaclub/internal/modules/leaderboard/service"
	"desideri.com/pugliaclub/pkg/period"
	"desideri.com/pugliaclub/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(leaderboardService.DefaultLimit)))

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

func (h *LeaderboardHandler) GetHistory(c *gin.Context) {
	history, err := h.service.GetHistory(c.Request.Context(), c.Query("month_year"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// CloseMonth closes the given month, or the previous one when omitted.
func (h *LeaderboardHandler) CloseMonth(c *gin.Context) {
	monthYear := c.Query("month_year")
	if monthYear == "" {
		monthYear = previousMonth(h.service.CurrentMonth())
	}

	result, err := h.service.CloseMonth(c.Request.Context(), monthYear)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	adminID, _ := response.GetUserID(c)
	log.Info().
		Str("admin_id", adminID.String()).
		Str("month_year", result.MonthYear).
		Bool("skipped", result.Skipped).
		Msg("leaderboard close requested")

	c.JSON(http.StatusOK, result)
}

func previousMonth(current string) string {
	t, err := period.ParseMonthYear(current, nil)
	if err != nil {
		return current
	}
	return period.PreviousMonth(t)
}
