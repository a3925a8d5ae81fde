package constants

// 活动游戏类型
const (
	GameTypeWheel   = "wheel"    // 大转盘
	GameTypeScratch = "scratch"  // 刮刮卡
	GameTypeEgg     = "egg"      // 砸金蛋
	GameTypeRedPack = "red_pack" // 拆红包
)

// GameTypes 支持的游戏类型集合
var GameTypes = map[string]bool{
	GameTypeWheel:   true,
	GameTypeScratch: true,
	GameTypeEgg:     true,
	GameTypeRedPack: true,
}

// 卡券状态
const (
	VoucherStatusActive    = "active"    // 待使用
	VoucherStatusUsed      = "used"      // 已核销
	VoucherStatusExpired   = "expired"   // 已过期
	VoucherStatusCancelled = "cancelled" // 已作废
)

// 资格校验失败原因
const (
	EligibilityReasonCampaignNotFound   = "CAMPAIGN_NOT_FOUND"
	EligibilityReasonCampaignNotActive  = "CAMPAIGN_NOT_ACTIVE"
	EligibilityReasonCampaignNotStarted = "CAMPAIGN_NOT_STARTED"
	EligibilityReasonCampaignEnded      = "CAMPAIGN_ENDED"
	EligibilityReasonNoPlaysLeft        = "NO_PLAYS_LEFT"
)

// 玩家状态
const (
	PlayerStatusActive  = "active"
	PlayerStatusBlocked = "blocked"
)

// 队列相关
const (
	QueueDefault = "default"

	TaskVoucherQRBackfill = "voucher:qr_backfill"
	TaskVoucherExpire     = "voucher:expire"
)

// 卡券兑换码字符集：大写字母与数字，剔除易混淆的 0、O、I、L、1。
const (
	VoucherCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	VoucherCodeLength   = 8
)

// 卡券默认有效期（天），与活动结束时间取较早者
const VoucherDefaultExpireDays = 30

// 抽奖事务冲突后的最大自动重试次数
const PlayMaxAttempts = 3
