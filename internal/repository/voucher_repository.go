package repository

import (
	"errors"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository 卡券数据访问接口
type VoucherRepository interface {
	GetByID(id uint) (*models.Voucher, error)
	GetByCode(code string) (*models.Voucher, error)
	Create(voucher *models.Voucher) error
	ListByPlayer(playerID uint, filter VoucherListFilter) ([]models.Voucher, int64, error)
	MarkUsed(id uint, usedAt time.Time) (bool, error)
	ExpireDue(now time.Time) (int64, error)
	UpdateQRImage(id uint, image []byte) error
	ListMissingQR(limit int) ([]models.Voucher, error)
	WithTx(tx *gorm.DB) *GormVoucherRepository
}

// VoucherListFilter 卡券列表筛选
type VoucherListFilter struct {
	CampaignID uint
	Status     string
	Page       int
	PageSize   int
}

// GormVoucherRepository GORM 实现
type GormVoucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository 创建卡券仓库
func NewVoucherRepository(db *gorm.DB) *GormVoucherRepository {
	return &GormVoucherRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVoucherRepository) WithTx(tx *gorm.DB) *GormVoucherRepository {
	if tx == nil {
		return r
	}
	return &GormVoucherRepository{db: tx}
}

// GetByID 根据ID获取卡券
func (r *GormVoucherRepository) GetByID(id uint) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.First(&voucher, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// GetByCode 根据券码获取卡券
func (r *GormVoucherRepository) GetByCode(code string) (*models.Voucher, error) {
	var voucher models.Voucher
	if err := r.db.Where("code = ?", code).First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &voucher, nil
}

// Create 创建卡券
func (r *GormVoucherRepository) Create(voucher *models.Voucher) error {
	return r.db.Create(voucher).Error
}

// ListByPlayer 获取玩家的卡券列表
func (r *GormVoucherRepository) ListByPlayer(playerID uint, filter VoucherListFilter) ([]models.Voucher, int64, error) {
	var vouchers []models.Voucher
	query := r.db.Model(&models.Voucher{}).Where("player_id = ?", playerID)

	if filter.CampaignID > 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&vouchers).Error; err != nil {
		return nil, 0, err
	}
	return vouchers, total, nil
}

// MarkUsed 核销卡券。
// 条件更新保证仅有效期内的待用卡券可核销，返回是否核销成功。
func (r *GormVoucherRepository) MarkUsed(id uint, usedAt time.Time) (bool, error) {
	result := r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		Where("status = ?", constants.VoucherStatusActive).
		Where("expires_at > ?", usedAt).
		Updates(map[string]interface{}{
			"status":  constants.VoucherStatusUsed,
			"used_at": usedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireDue 将过期未用的卡券批量置为过期，返回影响行数。
func (r *GormVoucherRepository) ExpireDue(now time.Time) (int64, error) {
	result := r.db.Model(&models.Voucher{}).
		Where("status = ?", constants.VoucherStatusActive).
		Where("expires_at <= ?", now).
		UpdateColumn("status", constants.VoucherStatusExpired)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateQRImage 补写二维码图片
func (r *GormVoucherRepository) UpdateQRImage(id uint, image []byte) error {
	return r.db.Model(&models.Voucher{}).
		Where("id = ?", id).
		UpdateColumn("qr_image", image).Error
}

// ListMissingQR 获取缺少二维码图片的待用卡券
func (r *GormVoucherRepository) ListMissingQR(limit int) ([]models.Voucher, error) {
	if limit <= 0 {
		limit = 100
	}
	var vouchers []models.Voucher
	err := r.db.
		Where("status = ?", constants.VoucherStatusActive).
		Where("qr_image IS NULL OR length(qr_image) = 0").
		Order("id asc").
		Limit(limit).
		Find(&vouchers).Error
	if err != nil {
		return nil, err
	}
	return vouchers, nil
}
