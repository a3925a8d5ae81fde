package service

import (
	"strings"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/repository"

	"gorm.io/gorm"
)

// VoucherService 卡券查询与核销服务
type VoucherService struct {
	voucherRepo repository.VoucherRepository
	rewardRepo  repository.RewardRepository
	issuer      *VoucherIssuer
}

// NewVoucherService 创建卡券服务
func NewVoucherService(voucherRepo repository.VoucherRepository, rewardRepo repository.RewardRepository, issuer *VoucherIssuer) *VoucherService {
	return &VoucherService{
		voucherRepo: voucherRepo,
		rewardRepo:  rewardRepo,
		issuer:      issuer,
	}
}

// VoucherDetail 卡券详情
type VoucherDetail struct {
	ID        uint           `json:"id"`
	Code      string         `json:"code"`
	Status    string         `json:"status"`
	QRImage   []byte         `json:"qr_image,omitempty"`
	RedeemURL string         `json:"redeem_url"`
	ExpiresAt time.Time      `json:"expires_at"`
	UsedAt    *time.Time     `json:"used_at,omitempty"`
	Reward    *RewardSummary `json:"reward,omitempty"`
}

// Lookup 根据券码查询卡券。
// 已过有效期但状态未刷新的卡券按过期返回。
func (s *VoucherService) Lookup(code string) (*VoucherDetail, error) {
	voucher, err := s.getByCode(code)
	if err != nil {
		return nil, err
	}
	return s.buildDetail(voucher), nil
}

// Redeem 核销卡券。
// 条件更新保证同一张券并发核销只会成功一次。
func (s *VoucherService) Redeem(code string) (*VoucherDetail, error) {
	voucher, err := s.getByCode(code)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := redeemableError(voucher, now); err != nil {
		return nil, err
	}

	ok, err := s.voucherRepo.MarkUsed(voucher.ID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		// 并发核销竞争失败，重新读取实际状态再归因
		refreshed, err := s.voucherRepo.GetByID(voucher.ID)
		if err != nil {
			return nil, err
		}
		if refreshed == nil {
			return nil, ErrVoucherNotFound
		}
		if err := redeemableError(refreshed, now); err != nil {
			return nil, err
		}
		return nil, ErrVoucherAlreadyUsed
	}

	voucher.Status = constants.VoucherStatusUsed
	voucher.UsedAt = &now
	return s.buildDetail(voucher), nil
}

// ListByPlayer 获取玩家的卡券列表
func (s *VoucherService) ListByPlayer(playerID uint, filter repository.VoucherListFilter) ([]VoucherDetail, int64, error) {
	vouchers, total, err := s.voucherRepo.ListByPlayer(playerID, filter)
	if err != nil {
		return nil, 0, err
	}
	details := make([]VoucherDetail, 0, len(vouchers))
	for i := range vouchers {
		if detail := s.buildDetail(&vouchers[i]); detail != nil {
			details = append(details, *detail)
		}
	}
	return details, total, nil
}

// ExpireSweep 批量刷新过期卡券状态，返回处理条数。
func (s *VoucherService) ExpireSweep() (int64, error) {
	affected, err := s.voucherRepo.ExpireDue(time.Now())
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		logger.Infow("voucher_expire_sweep", "affected", affected)
	}
	return affected, nil
}

// BackfillQR 为缺失二维码的卡券补渲染图片
func (s *VoucherService) BackfillQR(voucherID uint) error {
	voucher, err := s.voucherRepo.GetByID(voucherID)
	if err != nil {
		return err
	}
	if voucher == nil {
		return ErrVoucherNotFound
	}
	if len(voucher.QRImage) > 0 || voucher.Status != constants.VoucherStatusActive {
		return nil
	}
	png, err := s.issuer.RenderQR(voucher.Code)
	if err != nil {
		return err
	}
	return s.voucherRepo.UpdateQRImage(voucher.ID, png)
}

// BackfillMissingQR 批量补偿缺失的二维码图片，返回成功条数。
func (s *VoucherService) BackfillMissingQR(limit int) (int, error) {
	vouchers, err := s.voucherRepo.ListMissingQR(limit)
	if err != nil {
		return 0, err
	}
	done := 0
	for i := range vouchers {
		if err := s.BackfillQR(vouchers[i].ID); err != nil {
			logger.Warnw("voucher_qr_backfill_failed",
				"voucher_id", vouchers[i].ID,
				"error", err,
			)
			continue
		}
		done++
	}
	return done, nil
}

// Cancel 作废卡券并回补对应库存
func (s *VoucherService) Cancel(code string) error {
	voucher, err := s.getByCode(code)
	if err != nil {
		return err
	}
	if voucher.Status != constants.VoucherStatusActive {
		return redeemableError(voucher, time.Now())
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		voucherRepo := s.voucherRepo.WithTx(tx)
		refreshed, err := voucherRepo.GetByID(voucher.ID)
		if err != nil {
			return err
		}
		if refreshed == nil {
			return ErrVoucherNotFound
		}
		if refreshed.Status != constants.VoucherStatusActive {
			return redeemableError(refreshed, time.Now())
		}
		refreshed.Status = constants.VoucherStatusCancelled
		if err := tx.Model(&models.Voucher{}).
			Where("id = ?", refreshed.ID).
			UpdateColumn("status", constants.VoucherStatusCancelled).Error; err != nil {
			return err
		}
		return s.rewardRepo.WithTx(tx).IncrementRemaining(refreshed.RewardID)
	})
}

func (s *VoucherService) getByCode(code string) (*models.Voucher, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(code))
	if trimmed == "" {
		return nil, ErrVoucherNotFound
	}
	voucher, err := s.voucherRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, ErrVoucherNotFound
	}
	return voucher, nil
}

func (s *VoucherService) buildDetail(voucher *models.Voucher) *VoucherDetail {
	if voucher == nil {
		return nil
	}
	detail := &VoucherDetail{
		ID:        voucher.ID,
		Code:      voucher.Code,
		Status:    voucher.Status,
		QRImage:   voucher.QRImage,
		ExpiresAt: voucher.ExpiresAt,
		UsedAt:    voucher.UsedAt,
	}
	if s.issuer != nil {
		detail.RedeemURL = s.issuer.RedeemURL(voucher.Code)
	}
	if voucher.Status == constants.VoucherStatusActive && !voucher.ExpiresAt.After(time.Now()) {
		detail.Status = constants.VoucherStatusExpired
	}
	if s.rewardRepo != nil {
		if reward, err := s.rewardRepo.GetByID(voucher.RewardID); err == nil && reward != nil {
			detail.Reward = &RewardSummary{
				ID:          reward.ID,
				Name:        reward.Name,
				Description: reward.Description,
				Icon:        reward.Icon,
				Value:       reward.Value,
			}
		}
	}
	return detail
}

// redeemableError 将不可核销状态映射为业务错误，可核销时返回 nil。
func redeemableError(voucher *models.Voucher, now time.Time) error {
	if voucher == nil {
		return ErrVoucherNotFound
	}
	switch voucher.Status {
	case constants.VoucherStatusUsed:
		return ErrVoucherAlreadyUsed
	case constants.VoucherStatusExpired:
		return ErrVoucherExpired
	case constants.VoucherStatusCancelled:
		return ErrVoucherCancelled
	}
	if !voucher.ExpiresAt.After(now) {
		return ErrVoucherExpired
	}
	return nil
}
