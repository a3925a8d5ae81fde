package service

import (
	"errors"
	"testing"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"
)

func makeEligibilityCampaign(now time.Time) *models.Campaign {
	return &models.Campaign{
		ID:                1,
		Title:             "测试活动",
		GameType:          constants.GameTypeWheel,
		IsActive:          true,
		StartsAt:          now.Add(-1 * time.Hour),
		EndsAt:            now.Add(1 * time.Hour),
		MaxPlaysPerPlayer: 3,
	}
}

func TestEvaluateEligibilityOK(t *testing.T) {
	now := time.Now()
	decision := EvaluateEligibility(makeEligibilityCampaign(now), 1, now)
	if !decision.Eligible {
		t.Fatalf("expected eligible, got reason: %s", decision.Reason)
	}
	if decision.MaxPlays != 3 {
		t.Fatalf("expected max_plays=3, got: %d", decision.MaxPlays)
	}
	if decision.PlaysUsed != 1 {
		t.Fatalf("expected plays_used=1, got: %d", decision.PlaysUsed)
	}
	if decision.PlaysLeft == nil || *decision.PlaysLeft != 2 {
		t.Fatalf("expected plays_left=2, got: %v", decision.PlaysLeft)
	}
}

func TestEvaluateEligibilityReasonOrder(t *testing.T) {
	now := time.Now()

	// 活动不存在优先于一切
	decision := EvaluateEligibility(nil, 0, now)
	if decision.Eligible || decision.Reason != constants.EligibilityReasonCampaignNotFound {
		t.Fatalf("expected CAMPAIGN_NOT_FOUND, got: %+v", decision)
	}
	if decision.MaxPlays != 0 {
		t.Fatalf("expected max_plays=0 for missing campaign, got: %d", decision.MaxPlays)
	}

	// 停用优先于时间窗口：活动未开始且停用时报停用
	campaign := makeEligibilityCampaign(now)
	campaign.IsActive = false
	campaign.StartsAt = now.Add(1 * time.Hour)
	decision = EvaluateEligibility(campaign, 0, now)
	if decision.Reason != constants.EligibilityReasonCampaignNotActive {
		t.Fatalf("expected CAMPAIGN_NOT_ACTIVE, got: %s", decision.Reason)
	}

	// 未开始优先于次数耗尽
	campaign = makeEligibilityCampaign(now)
	campaign.StartsAt = now.Add(1 * time.Hour)
	decision = EvaluateEligibility(campaign, 99, now)
	if decision.Reason != constants.EligibilityReasonCampaignNotStarted {
		t.Fatalf("expected CAMPAIGN_NOT_STARTED, got: %s", decision.Reason)
	}

	// 已结束
	campaign = makeEligibilityCampaign(now)
	campaign.EndsAt = now.Add(-1 * time.Minute)
	decision = EvaluateEligibility(campaign, 0, now)
	if decision.Reason != constants.EligibilityReasonCampaignEnded {
		t.Fatalf("expected CAMPAIGN_ENDED, got: %s", decision.Reason)
	}

	// 次数耗尽
	campaign = makeEligibilityCampaign(now)
	decision = EvaluateEligibility(campaign, 3, now)
	if decision.Reason != constants.EligibilityReasonNoPlaysLeft {
		t.Fatalf("expected NO_PLAYS_LEFT, got: %s", decision.Reason)
	}
	if decision.PlaysLeft == nil || *decision.PlaysLeft != 0 {
		t.Fatalf("expected plays_left=0, got: %v", decision.PlaysLeft)
	}
}

func TestEvaluateEligibilityBoundaryTimes(t *testing.T) {
	now := time.Now()

	// 恰好开始时刻可参与
	campaign := makeEligibilityCampaign(now)
	campaign.StartsAt = now
	decision := EvaluateEligibility(campaign, 0, now)
	if !decision.Eligible {
		t.Fatalf("expected eligible at exact start time, got reason: %s", decision.Reason)
	}

	// 恰好结束时刻不可参与
	campaign = makeEligibilityCampaign(now)
	campaign.EndsAt = now
	decision = EvaluateEligibility(campaign, 0, now)
	if decision.Eligible || decision.Reason != constants.EligibilityReasonCampaignEnded {
		t.Fatalf("expected CAMPAIGN_ENDED at exact end time, got: %+v", decision)
	}
}

func TestEvaluateEligibilityUnlimitedPlays(t *testing.T) {
	now := time.Now()
	campaign := makeEligibilityCampaign(now)
	campaign.MaxPlaysPerPlayer = 0

	decision := EvaluateEligibility(campaign, 1000, now)
	if !decision.Eligible {
		t.Fatalf("expected eligible with unlimited plays, got reason: %s", decision.Reason)
	}
	if decision.MaxPlays != 0 {
		t.Fatalf("expected max_plays=0 for unlimited campaign, got: %d", decision.MaxPlays)
	}
	if decision.PlaysLeft != nil {
		t.Fatalf("expected nil plays_left with unlimited plays, got: %v", *decision.PlaysLeft)
	}
}

func TestEligibilityErrorMapping(t *testing.T) {
	cases := []struct {
		reason   string
		expected error
	}{
		{constants.EligibilityReasonCampaignNotFound, ErrCampaignNotFound},
		{constants.EligibilityReasonCampaignNotActive, ErrCampaignNotActive},
		{constants.EligibilityReasonCampaignNotStarted, ErrCampaignNotStarted},
		{constants.EligibilityReasonCampaignEnded, ErrCampaignEnded},
		{constants.EligibilityReasonNoPlaysLeft, ErrNoPlaysLeft},
	}
	for _, tc := range cases {
		if err := eligibilityError(tc.reason); !errors.Is(err, tc.expected) {
			t.Fatalf("reason %s: expected %v, got: %v", tc.reason, tc.expected, err)
		}
	}
	if err := eligibilityError(""); err != nil {
		t.Fatalf("expected nil for empty reason, got: %v", err)
	}
}
