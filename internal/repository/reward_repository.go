package repository

import (
	"errors"

	"github.com/luckyplay-next/internal/models"

	"gorm.io/gorm"
)

// RewardRepository 奖品数据访问接口
type RewardRepository interface {
	GetByID(id uint) (*models.Reward, error)
	ListByCampaign(campaignID uint) ([]models.Reward, error)
	ListActiveByCampaignForUpdate(campaignID uint) ([]models.Reward, error)
	Create(reward *models.Reward) error
	Update(reward *models.Reward) error
	Delete(id uint) error
	DecrementRemaining(id uint) (bool, error)
	IncrementRemaining(id uint) error
	WithTx(tx *gorm.DB) *GormRewardRepository
}

// GormRewardRepository GORM 实现
type GormRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 创建奖品仓库
func NewRewardRepository(db *gorm.DB) *GormRewardRepository {
	return &GormRewardRepository{db: db}
}

// WithTx 绑定事务
func (r *GormRewardRepository) WithTx(tx *gorm.DB) *GormRewardRepository {
	if tx == nil {
		return r
	}
	return &GormRewardRepository{db: tx}
}

// GetByID 根据ID获取奖品
func (r *GormRewardRepository) GetByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.First(&reward, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reward, nil
}

// ListByCampaign 获取活动下的奖品（按展示顺序）
func (r *GormRewardRepository) ListByCampaign(campaignID uint) ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.db.
		Where("campaign_id = ?", campaignID).
		Order("display_order asc, id asc").
		Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

// ListActiveByCampaignForUpdate 获取活动下启用的奖品并加行锁，供抽奖事务使用。
func (r *GormRewardRepository) ListActiveByCampaignForUpdate(campaignID uint) ([]models.Reward, error) {
	var rewards []models.Reward
	query := applyRowLock(r.db).
		Where("campaign_id = ?", campaignID).
		Where("is_active = ?", true).
		Order("display_order asc, id asc")
	if err := query.Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

// Create 创建奖品
func (r *GormRewardRepository) Create(reward *models.Reward) error {
	return r.db.Create(reward).Error
}

// Update 更新奖品
func (r *GormRewardRepository) Update(reward *models.Reward) error {
	return r.db.Save(reward).Error
}

// Delete 删除奖品
func (r *GormRewardRepository) Delete(id uint) error {
	return r.db.Delete(&models.Reward{}, id).Error
}

// DecrementRemaining 扣减一份库存。
// 条件更新保证余量不为正时不产生扣减，返回是否扣减成功。
func (r *GormRewardRepository) DecrementRemaining(id uint) (bool, error) {
	result := r.db.Model(&models.Reward{}).
		Where("id = ?", id).
		Where("remaining_quantity IS NOT NULL").
		Where("remaining_quantity > 0").
		UpdateColumn("remaining_quantity", gorm.Expr("remaining_quantity - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementRemaining 回补一份库存（卡券作废时使用）。
func (r *GormRewardRepository) IncrementRemaining(id uint) error {
	return r.db.Model(&models.Reward{}).
		Where("id = ?", id).
		Where("remaining_quantity IS NOT NULL").
		UpdateColumn("remaining_quantity", gorm.Expr("remaining_quantity + 1")).Error
}
