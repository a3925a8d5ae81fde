package repository

import (
	"errors"
	"time"

	"github.com/luckyplay-next/internal/models"

	"gorm.io/gorm"
)

// PlayerRepository 玩家数据访问接口
type PlayerRepository interface {
	GetByID(id uint) (*models.Player, error)
	GetByPhone(phone string) (*models.Player, error)
	Create(player *models.Player) error
	Update(player *models.Player) error
	IncrementPlayStats(id uint, won bool, playedAt time.Time) error
	WithTx(tx *gorm.DB) *GormPlayerRepository
}

// GormPlayerRepository GORM 实现
type GormPlayerRepository struct {
	db *gorm.DB
}

// NewPlayerRepository 创建玩家仓库
func NewPlayerRepository(db *gorm.DB) *GormPlayerRepository {
	return &GormPlayerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPlayerRepository) WithTx(tx *gorm.DB) *GormPlayerRepository {
	if tx == nil {
		return r
	}
	return &GormPlayerRepository{db: tx}
}

// GetByID 根据ID获取玩家
func (r *GormPlayerRepository) GetByID(id uint) (*models.Player, error) {
	var player models.Player
	if err := r.db.First(&player, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

// GetByPhone 根据手机号获取玩家
func (r *GormPlayerRepository) GetByPhone(phone string) (*models.Player, error) {
	var player models.Player
	if err := r.db.Where("phone = ?", phone).First(&player).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &player, nil
}

// Create 创建玩家
func (r *GormPlayerRepository) Create(player *models.Player) error {
	return r.db.Create(player).Error
}

// Update 更新玩家
func (r *GormPlayerRepository) Update(player *models.Player) error {
	return r.db.Save(player).Error
}

// IncrementPlayStats 累加玩家参与统计
func (r *GormPlayerRepository) IncrementPlayStats(id uint, won bool, playedAt time.Time) error {
	updates := map[string]interface{}{
		"play_count":   gorm.Expr("play_count + 1"),
		"last_play_at": playedAt,
	}
	if won {
		updates["win_count"] = gorm.Expr("win_count + 1")
	}
	return r.db.Model(&models.Player{}).
		Where("id = ?", id).
		Updates(updates).Error
}
