package i18n

// catalog 错误文案表（按语言分组）
var catalog = map[string]map[string]string{
	"zh-CN": {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "请先登录",
		"error.internal":                "服务器开小差了，请稍后再试",
		"error.rate_limited":            "操作过于频繁，请 %d 秒后再试",
		"error.rate_limit_unavailable":  "限流服务不可用",
		"error.player_id_invalid":       "玩家标识无效",
		"error.player_id_type_invalid":  "玩家标识类型无效",
		"error.phone_invalid":           "手机号格式不正确",
		"error.player_not_found":        "玩家不存在",
		"error.player_exists":           "该手机号已注册",
		"error.player_blocked":          "账号已被限制参与",
		"error.campaign_not_found":      "活动不存在",
		"error.campaign_not_active":     "活动未启用",
		"error.campaign_not_started":    "活动尚未开始",
		"error.campaign_ended":          "活动已结束",
		"error.no_plays_left":           "抽奖次数已用完",
		"error.campaign_no_rewards":     "活动奖品配置异常，请稍后再试",
		"error.play_selection_failed":   "活动奖品配置异常，请稍后再试",
		"error.play_conflict":           "当前参与人数较多，请稍后再试",
		"error.voucher_not_found":       "卡券不存在",
		"error.voucher_expired":         "卡券已过期",
		"error.voucher_already_used":    "卡券已核销",
		"error.voucher_cancelled":       "卡券已作废",
		"error.voucher_issue_failed":    "卡券签发失败，请稍后再试",
	},
	"en-US": {
		"error.bad_request":             "invalid request",
		"error.unauthorized":            "authentication required",
		"error.internal":                "internal server error, please retry later",
		"error.rate_limited":            "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":  "rate limiter unavailable",
		"error.player_id_invalid":       "invalid player id",
		"error.player_id_type_invalid":  "invalid player id type",
		"error.phone_invalid":           "invalid phone number",
		"error.player_not_found":        "player not found",
		"error.player_exists":           "phone number already registered",
		"error.player_blocked":          "player is blocked",
		"error.campaign_not_found":      "campaign not found",
		"error.campaign_not_active":     "campaign is not active",
		"error.campaign_not_started":    "campaign has not started",
		"error.campaign_ended":          "campaign has ended",
		"error.no_plays_left":           "no plays left",
		"error.campaign_no_rewards":     "campaign rewards misconfigured, please retry later",
		"error.play_selection_failed":   "campaign rewards misconfigured, please retry later",
		"error.play_conflict":           "busy right now, please retry",
		"error.voucher_not_found":       "voucher not found",
		"error.voucher_expired":         "voucher has expired",
		"error.voucher_already_used":    "voucher already redeemed",
		"error.voucher_cancelled":       "voucher cancelled",
		"error.voucher_issue_failed":    "voucher issuance failed, please retry later",
	},
}
