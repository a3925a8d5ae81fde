package service

import (
	"errors"
	"strings"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/queue"
	"github.com/luckyplay-next/internal/repository"

	"gorm.io/gorm"
)

// 兑换码撞上唯一索引后的换码重试次数
const voucherCodeRetries = 3

// PlayService 抽奖事务协调器。
// 单次抽奖内的资格复核、加权抽取、卡券签发、库存扣减与流水落库
// 全部在同一个数据库事务中完成。
type PlayService struct {
	campaignRepo repository.CampaignRepository
	rewardRepo   repository.RewardRepository
	playerRepo   repository.PlayerRepository
	playLogRepo  repository.PlayLogRepository
	voucherRepo  repository.VoucherRepository
	selector     *RewardSelector
	issuer       *VoucherIssuer
	queueClient  *queue.Client
	maxAttempts  int
}

// NewPlayService 创建抽奖服务
func NewPlayService(
	campaignRepo repository.CampaignRepository,
	rewardRepo repository.RewardRepository,
	playerRepo repository.PlayerRepository,
	playLogRepo repository.PlayLogRepository,
	voucherRepo repository.VoucherRepository,
	selector *RewardSelector,
	issuer *VoucherIssuer,
	queueClient *queue.Client,
	maxAttempts int,
) *PlayService {
	if maxAttempts <= 0 {
		maxAttempts = constants.PlayMaxAttempts
	}
	return &PlayService{
		campaignRepo: campaignRepo,
		rewardRepo:   rewardRepo,
		playerRepo:   playerRepo,
		playLogRepo:  playLogRepo,
		voucherRepo:  voucherRepo,
		selector:     selector,
		issuer:       issuer,
		queueClient:  queueClient,
		maxAttempts:  maxAttempts,
	}
}

// PlayInput 抽奖请求输入
type PlayInput struct {
	PlayerID   uint
	CampaignID uint
	ClientIP   string
	UserAgent  string
}

// RewardSummary 抽奖结果中的奖品摘要
type RewardSummary struct {
	ID          uint         `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Icon        string       `json:"icon"`
	Value       models.Money `json:"value"`
}

// VoucherSummary 抽奖结果中的卡券摘要
type VoucherSummary struct {
	ID        uint      `json:"id"`
	Code      string    `json:"code"`
	QRImage   []byte    `json:"qr_image,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PlayerSummary 抽奖后的玩家统计
type PlayerSummary struct {
	RemainingPlays *int64 `json:"remaining_plays,omitempty"` // 次数不限时为空
	TotalWins      int    `json:"total_wins"`
}

// PlayResult 单次抽奖结果
type PlayResult struct {
	IsWin   bool            `json:"is_win"`
	Reward  *RewardSummary  `json:"reward"`
	Voucher *VoucherSummary `json:"voucher"`
	Player  PlayerSummary   `json:"player"`
}

// CheckEligibility 校验玩家此刻能否参与活动
func (s *PlayService) CheckEligibility(playerID, campaignID uint) (*EligibilityDecision, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	var playsUsed int64
	if campaign != nil {
		playsUsed, err = s.playLogRepo.CountByPlayerAndCampaign(playerID, campaignID)
		if err != nil {
			return nil, err
		}
	}
	decision := EvaluateEligibility(campaign, playsUsed, time.Now())
	return &decision, nil
}

// ListHistory 获取玩家抽奖流水
func (s *PlayService) ListHistory(playerID uint, filter repository.PlayLogListFilter) ([]models.PlayLog, int64, error) {
	return s.playLogRepo.ListByPlayer(playerID, filter)
}

// Play 执行一次抽奖。
// 事务因库存竞争或数据库冲突失败时，从资格复核开始整体重试，
// 超过次数上限后向调用方返回可重试的冲突错误。
func (s *PlayService) Play(input PlayInput) (*PlayResult, error) {
	player, err := s.playerRepo.GetByID(input.PlayerID)
	if err != nil {
		return nil, err
	}
	if player == nil {
		return nil, ErrPlayerNotFound
	}
	if player.Status == constants.PlayerStatusBlocked {
		return nil, ErrPlayerBlocked
	}

	var result *PlayResult
	var pendingQRBackfill uint

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		result, pendingQRBackfill, err = s.playOnce(input)
		if err == nil {
			break
		}
		if !isRetryablePlayErr(err) {
			return nil, err
		}
		logger.Warnw("play_tx_conflict_retry",
			"player_id", input.PlayerID,
			"campaign_id", input.CampaignID,
			"attempt", attempt,
			"error", err,
		)
	}
	if err != nil {
		if isRetryablePlayErr(err) {
			return nil, ErrPlayConflict
		}
		return nil, err
	}

	// 二维码渲染失败不影响中奖结果，事务提交后异步补偿。
	if pendingQRBackfill > 0 && s.queueClient != nil {
		if enqErr := s.queueClient.EnqueueVoucherQRBackfill(queue.VoucherQRBackfillPayload{VoucherID: pendingQRBackfill}); enqErr != nil {
			logger.Errorw("voucher_qr_backfill_enqueue_failed",
				"voucher_id", pendingQRBackfill,
				"error", enqErr,
			)
		}
	}
	return result, nil
}

// playOnce 在单个事务内完成一次完整抽奖，返回待补偿二维码的卡券ID。
func (s *PlayService) playOnce(input PlayInput) (*PlayResult, uint, error) {
	var result PlayResult
	var qrBackfillID uint

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		campaignRepo := s.campaignRepo.WithTx(tx)
		rewardRepo := s.rewardRepo.WithTx(tx)
		playerRepo := s.playerRepo.WithTx(tx)
		playLogRepo := s.playLogRepo.WithTx(tx)
		voucherRepo := s.voucherRepo.WithTx(tx)

		campaign, err := campaignRepo.GetByID(input.CampaignID)
		if err != nil {
			return err
		}
		playsUsed := int64(0)
		if campaign != nil {
			playsUsed, err = playLogRepo.CountByPlayerAndCampaign(input.PlayerID, input.CampaignID)
			if err != nil {
				return err
			}
		}
		decision := EvaluateEligibility(campaign, playsUsed, now)
		if !decision.Eligible {
			return eligibilityError(decision.Reason)
		}

		rewards, err := rewardRepo.ListActiveByCampaignForUpdate(input.CampaignID)
		if err != nil {
			return err
		}
		if len(rewards) == 0 {
			return ErrCampaignNoRewards
		}

		selected := s.selector.Select(rewards)
		if selected == nil {
			return ErrRewardSelectionFailed
		}
		isWin := selected.IsPrize()

		var voucher *models.Voucher
		if isWin {
			if !selected.IsUnlimited() {
				ok, err := rewardRepo.DecrementRemaining(selected.ID)
				if err != nil {
					return err
				}
				if !ok {
					// 快照与扣减之间被并发抽走了最后一份，整体重抽
					return ErrPlayConflict
				}
			}
			voucher, err = s.issueVoucher(voucherRepo, input.PlayerID, selected, campaign, now)
			if err != nil {
				return err
			}
			if len(voucher.QRImage) == 0 {
				qrBackfillID = voucher.ID
			}
		}

		playLog := &models.PlayLog{
			PlayerID:   input.PlayerID,
			CampaignID: campaign.ID,
			GameType:   campaign.GameType,
			RewardID:   selected.ID,
			IsWin:      isWin,
			PlayedAt:   now,
			ClientIP:   input.ClientIP,
			UserAgent:  input.UserAgent,
		}
		if err := playLogRepo.Create(playLog); err != nil {
			return err
		}
		if err := playerRepo.IncrementPlayStats(input.PlayerID, isWin, now); err != nil {
			return err
		}
		// 中奖计数必须在事务内读取，避免并发抽奖时返回过期快照
		updated, err := playerRepo.GetByID(input.PlayerID)
		if err != nil {
			return err
		}
		totalWins := 0
		if updated != nil {
			totalWins = updated.WinCount
		}

		result = PlayResult{
			IsWin: isWin,
			Reward: &RewardSummary{
				ID:          selected.ID,
				Name:        selected.Name,
				Description: selected.Description,
				Icon:        selected.Icon,
				Value:       selected.Value,
			},
		}
		if voucher != nil {
			result.Voucher = &VoucherSummary{
				ID:        voucher.ID,
				Code:      voucher.Code,
				QRImage:   voucher.QRImage,
				ExpiresAt: voucher.ExpiresAt,
			}
		}
		result.Player = PlayerSummary{TotalWins: totalWins}
		if campaign.MaxPlaysPerPlayer > 0 {
			remaining := int64(campaign.MaxPlaysPerPlayer) - playsUsed - 1
			if remaining < 0 {
				remaining = 0
			}
			result.Player.RemainingPlays = &remaining
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &result, qrBackfillID, nil
}

// issueVoucher 在事务内签发卡券，兑换码撞库时换码重试。
// 二维码渲染失败时仍落库卡券，图片留待异步补偿。
func (s *PlayService) issueVoucher(voucherRepo *repository.GormVoucherRepository, playerID uint, reward *models.Reward, campaign *models.Campaign, now time.Time) (*models.Voucher, error) {
	for i := 0; i < voucherCodeRetries; i++ {
		voucher, err := s.issuer.NewVoucher(playerID, reward, campaign, now)
		if err != nil {
			return nil, err
		}
		if png, qrErr := s.issuer.RenderQR(voucher.Code); qrErr == nil {
			voucher.QRImage = png
		} else {
			logger.Warnw("voucher_qr_render_failed",
				"code", voucher.Code,
				"error", qrErr,
			)
		}
		err = voucherRepo.Create(voucher)
		if err == nil {
			return voucher, nil
		}
		if !isDuplicateKeyErr(err) {
			return nil, err
		}
	}
	return nil, ErrVoucherIssueFailed
}

// isRetryablePlayErr 判断错误是否应触发整体重抽
func isRetryablePlayErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrPlayConflict) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "busy")
}

// isDuplicateKeyErr 判断是否为唯一索引冲突
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
