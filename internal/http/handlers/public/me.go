package public

import (
	"github.com/luckyplay-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCurrentPlayer 获取当前玩家资料
func (h *Handler) GetCurrentPlayer(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		return
	}

	player, err := h.PlayerAuthService.GetProfile(playerID)
	if err != nil {
		respondPlayerAuthError(c, err)
		return
	}

	response.Success(c, gin.H{
		"id":           player.ID,
		"phone":        player.Phone,
		"display_name": player.DisplayName,
		"status":       player.Status,
		"play_count":   player.PlayCount,
		"win_count":    player.WinCount,
		"last_play_at": player.LastPlayAt,
	})
}
