package models

import (
	"time"
)

// PlayLog 抽奖流水（只追加，不更新不删除）
type PlayLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                      // 主键
	PlayerID   uint      `gorm:"index;not null" json:"player_id"`           // 玩家ID
	CampaignID uint      `gorm:"index;not null" json:"campaign_id"`         // 活动ID
	GameType   string    `gorm:"not null" json:"game_type"`                 // 游戏类型
	RewardID   uint      `gorm:"index;not null" json:"reward_id"`           // 命中的奖品档位ID（含谢谢参与档）
	IsWin      bool      `gorm:"not null;default:false" json:"is_win"`      // 是否中奖
	PlayedAt   time.Time `gorm:"index;not null" json:"played_at"`           // 抽奖时间
	ClientIP   string    `gorm:"default:''" json:"client_ip"`               // 客户端IP
	UserAgent  string    `gorm:"default:''" json:"user_agent"`              // 客户端UA
}

// TableName 指定表名
func (PlayLog) TableName() string {
	return "play_logs"
}
