package service

import (
	crand "crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

const voucherQRSize = 256

// VoucherIssuer 负责生成卡券：兑换码、有效期与二维码图片。
// 码的唯一性最终由数据库唯一索引兜底，生成器本身不查重。
type VoucherIssuer struct {
	baseURL    string
	expireDays int
}

// NewVoucherIssuer 创建卡券签发器
func NewVoucherIssuer(baseURL string, expireDays int) *VoucherIssuer {
	if expireDays <= 0 {
		expireDays = constants.VoucherDefaultExpireDays
	}
	return &VoucherIssuer{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		expireDays: expireDays,
	}
}

// GenerateCode 生成兑换码。
// 逐字符拒绝采样，避免取模在字符集上引入偏差。
func (i *VoucherIssuer) GenerateCode() (string, error) {
	alphabet := constants.VoucherCodeAlphabet
	// 单字节可用的最大无偏区间
	limit := byte(256 - 256%len(alphabet))

	code := make([]byte, 0, constants.VoucherCodeLength)
	buf := make([]byte, constants.VoucherCodeLength*2)
	for len(code) < constants.VoucherCodeLength {
		if _, err := crand.Read(buf); err != nil {
			return "", fmt.Errorf("随机源读取失败: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, alphabet[int(b)%len(alphabet)])
			if len(code) == constants.VoucherCodeLength {
				break
			}
		}
	}
	return string(code), nil
}

// RedeemURL 构建兑换链接
func (i *VoucherIssuer) RedeemURL(code string) string {
	return fmt.Sprintf("%s/voucher/%s", i.baseURL, code)
}

// RenderQR 将兑换链接渲染为 PNG 二维码。
// 中等纠错等级，便于打印或屏幕展示时部分遮挡仍可识别。
func (i *VoucherIssuer) RenderQR(code string) ([]byte, error) {
	png, err := qrcode.Encode(i.RedeemURL(code), qrcode.Medium, voucherQRSize)
	if err != nil {
		return nil, fmt.Errorf("二维码渲染失败: %w", err)
	}
	return png, nil
}

// ExpireAt 计算卡券过期时间：默认有效期与活动结束时间取较早者。
func (i *VoucherIssuer) ExpireAt(now, campaignEndsAt time.Time) time.Time {
	expires := now.AddDate(0, 0, i.expireDays)
	if campaignEndsAt.Before(expires) {
		return campaignEndsAt
	}
	return expires
}

// NewVoucher 组装一张未落库的卡券（不含二维码图片）。
func (i *VoucherIssuer) NewVoucher(playerID uint, reward *models.Reward, campaign *models.Campaign, now time.Time) (*models.Voucher, error) {
	code, err := i.GenerateCode()
	if err != nil {
		return nil, err
	}
	return &models.Voucher{
		PlayerID:   playerID,
		RewardID:   reward.ID,
		CampaignID: campaign.ID,
		Code:       code,
		Status:     constants.VoucherStatusActive,
		ExpiresAt:  i.ExpireAt(now, campaign.EndsAt),
	}, nil
}
