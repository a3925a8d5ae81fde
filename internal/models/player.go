package models

import (
	"time"

	"gorm.io/gorm"
)

// Player 参与玩家
type Player struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	Phone       string         `gorm:"uniqueIndex;not null" json:"phone"`      // 手机号
	DisplayName string         `gorm:"default:''" json:"display_name"`         // 昵称
	Status      string         `gorm:"default:'active'" json:"status"`         // 账号状态
	PlayCount   int            `gorm:"not null;default:0" json:"play_count"`   // 累计抽奖次数（仅随抽奖事务递增）
	WinCount    int            `gorm:"not null;default:0" json:"win_count"`    // 累计中奖次数（仅随抽奖事务递增）
	LastPlayAt  *time.Time     `json:"last_play_at"`                           // 最近抽奖时间
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间
}

// TableName 指定表名
func (Player) TableName() string {
	return "players"
}
