package repository

import (
	"errors"
	"time"

	"github.com/luckyplay-next/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 活动数据访问接口
type CampaignRepository interface {
	GetByID(id uint) (*models.Campaign, error)
	GetByIDWithRewards(id uint) (*models.Campaign, error)
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)
	ListPublic(now time.Time) ([]models.Campaign, error)
	Create(campaign *models.Campaign) error
	Update(campaign *models.Campaign) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormCampaignRepository
}

// CampaignListFilter 活动列表筛选
type CampaignListFilter struct {
	GameType string
	IsActive *bool
	Keyword  string
	Page     int
	PageSize int
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCampaignRepository) WithTx(tx *gorm.DB) *GormCampaignRepository {
	if tx == nil {
		return r
	}
	return &GormCampaignRepository{db: tx}
}

// GetByID 根据ID获取活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// GetByIDWithRewards 根据ID获取活动并预加载奖品（按展示顺序）
func (r *GormCampaignRepository) GetByIDWithRewards(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.
		Preload("Rewards", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		First(&campaign, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// List 获取活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	query := r.db.Model(&models.Campaign{})

	if filter.GameType != "" {
		query = query.Where("game_type = ?", filter.GameType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("title LIKE ?", like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// ListPublic 获取当前对外可见的活动（启用且处于时间窗口内）
func (r *GormCampaignRepository) ListPublic(now time.Time) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.
		Where("is_active = ?", true).
		Where("starts_at <= ?", now).
		Where("ends_at > ?", now).
		Order("id desc").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// Create 创建活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// Update 更新活动
func (r *GormCampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete 删除活动
func (r *GormCampaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}
