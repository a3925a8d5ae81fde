package repository

import (
	"github.com/luckyplay-next/internal/models"

	"gorm.io/gorm"
)

// PlayLogRepository 抽奖流水数据访问接口
type PlayLogRepository interface {
	Create(log *models.PlayLog) error
	CountByPlayerAndCampaign(playerID, campaignID uint) (int64, error)
	ListByPlayer(playerID uint, filter PlayLogListFilter) ([]models.PlayLog, int64, error)
	WithTx(tx *gorm.DB) *GormPlayLogRepository
}

// PlayLogListFilter 抽奖流水筛选
type PlayLogListFilter struct {
	CampaignID uint
	OnlyWins   bool
	Page       int
	PageSize   int
}

// GormPlayLogRepository GORM 实现
type GormPlayLogRepository struct {
	db *gorm.DB
}

// NewPlayLogRepository 创建抽奖流水仓库
func NewPlayLogRepository(db *gorm.DB) *GormPlayLogRepository {
	return &GormPlayLogRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPlayLogRepository) WithTx(tx *gorm.DB) *GormPlayLogRepository {
	if tx == nil {
		return r
	}
	return &GormPlayLogRepository{db: tx}
}

// Create 写入一条抽奖流水（流水只增不改）
func (r *GormPlayLogRepository) Create(log *models.PlayLog) error {
	return r.db.Create(log).Error
}

// CountByPlayerAndCampaign 统计玩家在活动内的参与次数
func (r *GormPlayLogRepository) CountByPlayerAndCampaign(playerID, campaignID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PlayLog{}).
		Where("player_id = ?", playerID).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ListByPlayer 获取玩家的抽奖流水
func (r *GormPlayLogRepository) ListByPlayer(playerID uint, filter PlayLogListFilter) ([]models.PlayLog, int64, error) {
	var logs []models.PlayLog
	query := r.db.Model(&models.PlayLog{}).Where("player_id = ?", playerID)

	if filter.CampaignID > 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.OnlyWins {
		query = query.Where("is_win = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
