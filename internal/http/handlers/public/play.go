package public

import (
	"strconv"
	"strings"

	"github.com/luckyplay-next/internal/http/response"
	"github.com/luckyplay-next/internal/repository"
	"github.com/luckyplay-next/internal/service"

	"github.com/gin-gonic/gin"
)

// Play 执行一次抽奖
func (h *Handler) Play(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		return
	}
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || campaignID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	result, err := h.PlayService.Play(service.PlayInput{
		PlayerID:   playerID,
		CampaignID: uint(campaignID),
		ClientIP:   c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	})
	if err != nil {
		respondPlayError(c, err)
		return
	}

	requestLog(c).Infow("play_completed",
		"player_id", playerID,
		"campaign_id", campaignID,
		"is_win", result.IsWin,
	)
	response.Success(c, result)
}

// CheckEligibility 查询玩家参与资格
func (h *Handler) CheckEligibility(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		return
	}
	campaignID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || campaignID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	decision, err := h.PlayService.CheckEligibility(playerID, uint(campaignID))
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, decision)
}

// GetMyPlays 获取当前玩家的抽奖流水
func (h *Handler) GetMyPlays(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	campaignID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("campaign_id")), 10, 64)
	onlyWins := c.Query("only_wins") == "true"

	logs, total, err := h.PlayService.ListHistory(playerID, repository.PlayLogListFilter{
		CampaignID: uint(campaignID),
		OnlyWins:   onlyWins,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, logs, pagination)
}
