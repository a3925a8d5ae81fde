package public

import (
	"errors"

	"github.com/luckyplay-next/internal/http/response"
	"github.com/luckyplay-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var eligibilityErrorRules = []mappedHandlerError{
	{target: service.ErrCampaignNotFound, code: response.CodeNotFound, key: "error.campaign_not_found"},
	{target: service.ErrCampaignNotActive, code: response.CodeBadRequest, key: "error.campaign_not_active"},
	{target: service.ErrCampaignNotStarted, code: response.CodeBadRequest, key: "error.campaign_not_started"},
	{target: service.ErrCampaignEnded, code: response.CodeBadRequest, key: "error.campaign_ended"},
	{target: service.ErrNoPlaysLeft, code: response.CodeBadRequest, key: "error.no_plays_left"},
}

var playExtraErrorRules = []mappedHandlerError{
	{target: service.ErrPlayerNotFound, code: response.CodeUnauthorized, key: "error.player_not_found"},
	{target: service.ErrPlayerBlocked, code: response.CodeUnauthorized, key: "error.player_blocked"},
	{target: service.ErrCampaignNoRewards, code: response.CodeInternal, key: "error.campaign_no_rewards"},
	{target: service.ErrRewardSelectionFailed, code: response.CodeInternal, key: "error.play_selection_failed"},
	{target: service.ErrPlayConflict, code: response.CodeTooManyRequests, key: "error.play_conflict"},
	{target: service.ErrVoucherIssueFailed, code: response.CodeInternal, key: "error.voucher_issue_failed"},
}

var voucherErrorRules = []mappedHandlerError{
	{target: service.ErrVoucherNotFound, code: response.CodeNotFound, key: "error.voucher_not_found"},
	{target: service.ErrVoucherExpired, code: response.CodeBadRequest, key: "error.voucher_expired"},
	{target: service.ErrVoucherAlreadyUsed, code: response.CodeBadRequest, key: "error.voucher_already_used"},
	{target: service.ErrVoucherCancelled, code: response.CodeBadRequest, key: "error.voucher_cancelled"},
}

var playerAuthErrorRules = []mappedHandlerError{
	{target: service.ErrPhoneInvalid, code: response.CodeBadRequest, key: "error.phone_invalid"},
	{target: service.ErrPlayerExists, code: response.CodeBadRequest, key: "error.player_exists"},
	{target: service.ErrPlayerNotFound, code: response.CodeNotFound, key: "error.player_not_found"},
	{target: service.ErrPlayerBlocked, code: response.CodeUnauthorized, key: "error.player_blocked"},
}

func respondPlayError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(eligibilityErrorRules, playExtraErrorRules), response.CodeInternal, "error.internal")
}

func respondVoucherError(c *gin.Context, err error) {
	respondWithMappedError(c, err, voucherErrorRules, response.CodeInternal, "error.internal")
}

func respondPlayerAuthError(c *gin.Context, err error) {
	respondWithMappedError(c, err, playerAuthErrorRules, response.CodeInternal, "error.internal")
}
