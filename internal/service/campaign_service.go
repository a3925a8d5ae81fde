package service

import (
	"context"
	"fmt"
	"time"

	"github.com/luckyplay-next/internal/cache"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/repository"
)

// 公开活动数据的缓存时长，窗口状态靠短 TTL 自然刷新
const campaignCacheTTL = 60 * time.Second

// CampaignService 活动公开读服务
type CampaignService struct {
	campaignRepo repository.CampaignRepository
	rewardRepo   repository.RewardRepository
}

// NewCampaignService 创建活动服务
func NewCampaignService(campaignRepo repository.CampaignRepository, rewardRepo repository.RewardRepository) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		rewardRepo:   rewardRepo,
	}
}

// CampaignSummary 活动摘要（列表用）
type CampaignSummary struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	GameType          string    `json:"game_type"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	MaxPlaysPerPlayer int       `json:"max_plays_per_player"`
}

// CampaignRewardView 活动详情中的奖品展示项。
// 不暴露权重与剩余库存，避免玩家侧推算中奖概率。
type CampaignRewardView struct {
	ID           uint         `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Icon         string       `json:"icon"`
	Value        models.Money `json:"value"`
	DisplayOrder int          `json:"display_order"`
	InStock      bool         `json:"in_stock"`
}

// CampaignDetail 活动详情
type CampaignDetail struct {
	CampaignSummary
	IsActive bool                 `json:"is_active"`
	Rewards  []CampaignRewardView `json:"rewards"`
}

// ListPublic 获取当前可参与的活动列表
func (s *CampaignService) ListPublic(ctx context.Context) ([]CampaignSummary, error) {
	const cacheKey = "campaign:public_list"
	var cached []CampaignSummary
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	} else if err != nil {
		logger.Warnw("campaign_cache_read_failed", "key", cacheKey, "error", err)
	}

	campaigns, err := s.campaignRepo.ListPublic(time.Now())
	if err != nil {
		return nil, err
	}
	summaries := make([]CampaignSummary, 0, len(campaigns))
	for i := range campaigns {
		summaries = append(summaries, buildCampaignSummary(&campaigns[i]))
	}

	if err := cache.SetJSON(ctx, cacheKey, summaries, campaignCacheTTL); err != nil {
		logger.Warnw("campaign_cache_write_failed", "key", cacheKey, "error", err)
	}
	return summaries, nil
}

// GetDetail 获取活动详情（含奖品展示项）
func (s *CampaignService) GetDetail(ctx context.Context, id uint) (*CampaignDetail, error) {
	cacheKey := fmt.Sprintf("campaign:detail:%d", id)
	var cached CampaignDetail
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		logger.Warnw("campaign_cache_read_failed", "key", cacheKey, "error", err)
	}

	campaign, err := s.campaignRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}
	rewards, err := s.rewardRepo.ListByCampaign(id)
	if err != nil {
		return nil, err
	}

	detail := &CampaignDetail{
		CampaignSummary: buildCampaignSummary(campaign),
		IsActive:        campaign.IsActive,
		Rewards:         make([]CampaignRewardView, 0, len(rewards)),
	}
	for i := range rewards {
		reward := &rewards[i]
		if !reward.IsActive {
			continue
		}
		detail.Rewards = append(detail.Rewards, CampaignRewardView{
			ID:           reward.ID,
			Name:         reward.Name,
			Description:  reward.Description,
			Icon:         reward.Icon,
			Value:        reward.Value,
			DisplayOrder: reward.DisplayOrder,
			InStock:      reward.HasStock(),
		})
	}

	if err := cache.SetJSON(ctx, cacheKey, detail, campaignCacheTTL); err != nil {
		logger.Warnw("campaign_cache_write_failed", "key", cacheKey, "error", err)
	}
	return detail, nil
}

// InvalidateCache 清理活动缓存（活动配置变更后调用）
func (s *CampaignService) InvalidateCache(ctx context.Context, id uint) {
	if err := cache.Del(ctx, "campaign:public_list"); err != nil {
		logger.Warnw("campaign_cache_del_failed", "key", "campaign:public_list", "error", err)
	}
	key := fmt.Sprintf("campaign:detail:%d", id)
	if err := cache.Del(ctx, key); err != nil {
		logger.Warnw("campaign_cache_del_failed", "key", key, "error", err)
	}
}

func buildCampaignSummary(campaign *models.Campaign) CampaignSummary {
	return CampaignSummary{
		ID:                campaign.ID,
		Title:             campaign.Title,
		Description:       campaign.Description,
		GameType:          campaign.GameType,
		StartsAt:          campaign.StartsAt,
		EndsAt:            campaign.EndsAt,
		MaxPlaysPerPlayer: campaign.MaxPlaysPerPlayer,
	}
}
