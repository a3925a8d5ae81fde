package public

import (
	"strconv"

	"github.com/luckyplay-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCampaigns 获取当前可参与的活动列表
func (h *Handler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.CampaignService.ListPublic(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, campaigns)
}

// GetCampaign 获取活动详情
func (h *Handler) GetCampaign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	detail, err := h.CampaignService.GetDetail(c.Request.Context(), uint(id))
	if err != nil {
		respondPlayError(c, err)
		return
	}
	response.Success(c, detail)
}
