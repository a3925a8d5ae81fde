package models

import (
	"time"

	"github.com/luckyplay-next/internal/constants"
)

// Voucher 中奖卡券
type Voucher struct {
	ID         uint       `gorm:"primarykey" json:"id"`                      // 主键
	PlayerID   uint       `gorm:"index;not null" json:"player_id"`           // 玩家ID
	RewardID   uint       `gorm:"index;not null" json:"reward_id"`           // 奖品档位ID
	CampaignID uint       `gorm:"index;not null" json:"campaign_id"`         // 活动ID
	Code       string     `gorm:"uniqueIndex;not null" json:"code"`          // 兑换码（全局唯一）
	QRImage    []byte     `gorm:"type:blob" json:"-"`                        // 核销二维码 PNG（落库以便展示时不依赖重绘）
	Status     string     `gorm:"index;not null;default:'active'" json:"status"` // 状态（active/used/expired/cancelled）
	ExpiresAt  time.Time  `gorm:"index;not null" json:"expires_at"`          // 过期时间
	UsedAt     *time.Time `json:"used_at"`                                   // 核销时间
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt  time.Time  `gorm:"index" json:"updated_at"`                   // 更新时间
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}

// IsRedeemable 判断卡券当前是否可核销
func (v *Voucher) IsRedeemable(now time.Time) bool {
	if v == nil {
		return false
	}
	if v.Status != constants.VoucherStatusActive {
		return false
	}
	return now.Before(v.ExpiresAt)
}
