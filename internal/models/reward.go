package models

import (
	"time"

	"gorm.io/gorm"
)

// Reward 奖品档位
type Reward struct {
	ID                uint           `gorm:"primarykey" json:"id"`                              // 主键
	CampaignID        uint           `gorm:"index;not null" json:"campaign_id"`                 // 所属活动ID
	Name              string         `gorm:"not null" json:"name"`                              // 奖品名称
	Description       string         `gorm:"type:text" json:"description"`                      // 奖品说明
	Icon              string         `gorm:"default:''" json:"icon"`                            // 奖品图标
	Probability       float64        `gorm:"not null;default:0" json:"probability"`             // 中奖权重（0-100，活动内相对值）
	TotalQuantity     *int           `gorm:"" json:"total_quantity"`                            // 总量（nil 表示不限量）
	RemainingQuantity *int           `gorm:"" json:"remaining_quantity"`                        // 剩余量（nil 表示不限量，仅在抽奖事务内递减）
	Value             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"value"` // 面值（0 表示谢谢参与）
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`            // 是否启用
	DisplayOrder      int            `gorm:"not null;default:0" json:"display_order"`           // 展示顺序
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                           // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (Reward) TableName() string {
	return "rewards"
}

// IsUnlimited 判断是否不限量
func (r *Reward) IsUnlimited() bool {
	return r != nil && r.RemainingQuantity == nil
}

// HasStock 判断是否仍有库存
func (r *Reward) HasStock() bool {
	if r == nil {
		return false
	}
	return r.RemainingQuantity == nil || *r.RemainingQuantity > 0
}

// IsPrize 判断是否为真实奖品（面值为 0 视为谢谢参与）
func (r *Reward) IsPrize() bool {
	return r != nil && r.Value.Decimal.IsPositive()
}
