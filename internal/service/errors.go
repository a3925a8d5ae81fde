package service

import "errors"

// 业务错误定义，处理层据此映射响应码与文案。
var (
	// 玩家
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
	ErrPlayerBlocked  = errors.New("player blocked")
	ErrPhoneInvalid   = errors.New("invalid phone number")

	// 资格校验
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCampaignNotActive  = errors.New("campaign not active")
	ErrCampaignNotStarted = errors.New("campaign not started")
	ErrCampaignEnded      = errors.New("campaign ended")
	ErrNoPlaysLeft        = errors.New("no plays left")

	// 抽奖
	ErrCampaignNoRewards     = errors.New("campaign has no eligible rewards")
	ErrRewardSelectionFailed = errors.New("reward selection failed")
	ErrPlayConflict          = errors.New("play transaction conflict")
	ErrVoucherIssueFailed    = errors.New("voucher issue failed")

	// 卡券
	ErrVoucherNotFound    = errors.New("voucher not found")
	ErrVoucherExpired     = errors.New("voucher expired")
	ErrVoucherAlreadyUsed = errors.New("voucher already used")
	ErrVoucherCancelled   = errors.New("voucher cancelled")
)
