package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 抽奖活动
type Campaign struct {
	ID                uint           `gorm:"primarykey" json:"id"`                          // 主键
	Title             string         `gorm:"not null" json:"title"`                         // 活动名称
	Description       string         `gorm:"type:text" json:"description"`                  // 活动说明
	GameType          string         `gorm:"not null;default:'wheel'" json:"game_type"`     // 游戏类型（wheel/scratch/egg/red_pack）
	IsActive          bool           `gorm:"not null;default:true" json:"is_active"`        // 是否启用
	StartsAt          time.Time      `gorm:"index;not null" json:"starts_at"`               // 开始时间
	EndsAt            time.Time      `gorm:"index;not null" json:"ends_at"`                 // 结束时间
	MaxPlaysPerPlayer int            `gorm:"not null;default:1" json:"max_plays_per_player"` // 每人可抽次数
	Rewards           []Reward       `gorm:"foreignKey:CampaignID" json:"rewards,omitempty"` // 奖品档位
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                       // 创建时间
	UpdatedAt         time.Time      `gorm:"index" json:"updated_at"`                       // 更新时间
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                // 软删除时间
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}

// IsWithinWindow 判断时间点是否落在活动有效期内
func (c *Campaign) IsWithinWindow(now time.Time) bool {
	if c == nil {
		return false
	}
	return !now.Before(c.StartsAt) && !now.After(c.EndsAt)
}
