package service

import (
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"
)

// EligibilityDecision 资格校验结论
type EligibilityDecision struct {
	Eligible  bool   `json:"eligible"`
	Reason    string `json:"reason,omitempty"` // 不合格时的原因码
	MaxPlays  int    `json:"max_plays"`        // 每人次数上限（0 表示不限）
	PlaysUsed int64  `json:"plays_used"`
	PlaysLeft *int64 `json:"plays_left,omitempty"` // 次数不限时为空
}

// EvaluateEligibility 判定玩家此刻能否参与活动。
// 校验按固定顺序短路：存在性、启用、开始时间、结束时间、剩余次数。
func EvaluateEligibility(campaign *models.Campaign, playsUsed int64, now time.Time) EligibilityDecision {
	decision := EligibilityDecision{PlaysUsed: playsUsed}

	if campaign == nil {
		decision.Reason = constants.EligibilityReasonCampaignNotFound
		return decision
	}
	decision.MaxPlays = campaign.MaxPlaysPerPlayer
	if !campaign.IsActive {
		decision.Reason = constants.EligibilityReasonCampaignNotActive
		return decision
	}
	if now.Before(campaign.StartsAt) {
		decision.Reason = constants.EligibilityReasonCampaignNotStarted
		return decision
	}
	if !now.Before(campaign.EndsAt) {
		decision.Reason = constants.EligibilityReasonCampaignEnded
		return decision
	}
	if campaign.MaxPlaysPerPlayer > 0 {
		left := int64(campaign.MaxPlaysPerPlayer) - playsUsed
		if left <= 0 {
			zero := int64(0)
			decision.PlaysLeft = &zero
			decision.Reason = constants.EligibilityReasonNoPlaysLeft
			return decision
		}
		decision.PlaysLeft = &left
	}

	decision.Eligible = true
	return decision
}

// eligibilityError 将原因码映射为业务错误
func eligibilityError(reason string) error {
	switch reason {
	case constants.EligibilityReasonCampaignNotFound:
		return ErrCampaignNotFound
	case constants.EligibilityReasonCampaignNotActive:
		return ErrCampaignNotActive
	case constants.EligibilityReasonCampaignNotStarted:
		return ErrCampaignNotStarted
	case constants.EligibilityReasonCampaignEnded:
		return ErrCampaignEnded
	case constants.EligibilityReasonNoPlaysLeft:
		return ErrNoPlaysLeft
	default:
		return nil
	}
}
