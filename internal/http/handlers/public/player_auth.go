package public

import (
	"github.com/luckyplay-next/internal/http/response"
	"github.com/luckyplay-next/internal/service"

	"github.com/gin-gonic/gin"
)

// PlayerRegisterRequest 注册请求
type PlayerRegisterRequest struct {
	Phone       string `json:"phone" binding:"required"`
	DisplayName string `json:"display_name"`
}

// PlayerRegister 玩家注册
func (h *Handler) PlayerRegister(c *gin.Context) {
	var req PlayerRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.PlayerAuthService.Register(service.RegisterInput{
		Phone:       req.Phone,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		respondPlayerAuthError(c, err)
		return
	}

	response.Success(c, buildAuthPayload(result))
}

// PlayerLoginRequest 登录请求
type PlayerLoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// PlayerLogin 玩家登录
func (h *Handler) PlayerLogin(c *gin.Context) {
	var req PlayerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.PlayerAuthService.Login(req.Phone)
	if err != nil {
		respondPlayerAuthError(c, err)
		return
	}

	response.Success(c, buildAuthPayload(result))
}

func buildAuthPayload(result *service.AuthResult) gin.H {
	return gin.H{
		"player": gin.H{
			"id":           result.Player.ID,
			"phone":        result.Player.Phone,
			"display_name": result.Player.DisplayName,
			"play_count":   result.Player.PlayCount,
			"win_count":    result.Player.WinCount,
		},
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
	}
}
