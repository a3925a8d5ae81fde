package public

import (
	"strconv"
	"strings"

	"github.com/luckyplay-next/internal/http/response"
	"github.com/luckyplay-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetVoucherByCode 根据券码查询卡券
func (h *Handler) GetVoucherByCode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	detail, err := h.VoucherService.Lookup(code)
	if err != nil {
		respondVoucherError(c, err)
		return
	}
	response.Success(c, detail)
}

// RedeemVoucher 核销卡券
func (h *Handler) RedeemVoucher(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	detail, err := h.VoucherService.Redeem(code)
	if err != nil {
		respondVoucherError(c, err)
		return
	}

	requestLog(c).Infow("voucher_redeemed", "code", detail.Code)
	response.Success(c, detail)
}

// GetMyVouchers 获取当前玩家的卡券列表
func (h *Handler) GetMyVouchers(c *gin.Context) {
	playerID, ok := getPlayerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	campaignID, _ := strconv.ParseUint(strings.TrimSpace(c.Query("campaign_id")), 10, 64)
	status := strings.TrimSpace(c.Query("status"))

	vouchers, total, err := h.VoucherService.ListByPlayer(playerID, repository.VoucherListFilter{
		CampaignID: uint(campaignID),
		Status:     status,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, vouchers, pagination)
}
