package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCampaignRepositoryTest(t *testing.T) (*GormCampaignRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:campaign_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Campaign{}, &models.Reward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCampaignRepository(db), db
}

func createCampaignFixture(t *testing.T, db *gorm.DB, title string, active bool, startsAt, endsAt time.Time) *models.Campaign {
	t.Helper()
	campaign := models.Campaign{
		Title:             title,
		GameType:          constants.GameTypeWheel,
		IsActive:          active,
		StartsAt:          startsAt,
		EndsAt:            endsAt,
		MaxPlaysPerPlayer: 3,
	}
	if err := db.Create(&campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return &campaign
}

func TestCampaignRepositoryListPublic(t *testing.T) {
	repo, db := setupCampaignRepositoryTest(t)
	now := time.Now()

	createCampaignFixture(t, db, "进行中", true, now.Add(-1*time.Hour), now.Add(1*time.Hour))
	createCampaignFixture(t, db, "已停用", false, now.Add(-1*time.Hour), now.Add(1*time.Hour))
	createCampaignFixture(t, db, "未开始", true, now.Add(1*time.Hour), now.Add(2*time.Hour))
	createCampaignFixture(t, db, "已结束", true, now.Add(-2*time.Hour), now.Add(-1*time.Hour))

	campaigns, err := repo.ListPublic(now)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if len(campaigns) != 1 || campaigns[0].Title != "进行中" {
		t.Fatalf("expected only running campaign, got: %+v", campaigns)
	}
}

func TestCampaignRepositoryGetByIDWithRewards(t *testing.T) {
	repo, db := setupCampaignRepositoryTest(t)
	now := time.Now()
	campaign := createCampaignFixture(t, db, "带奖品", true, now.Add(-1*time.Hour), now.Add(1*time.Hour))

	rewards := []models.Reward{
		{CampaignID: campaign.ID, Name: "三等奖", Probability: 60, IsActive: true, DisplayOrder: 3},
		{CampaignID: campaign.ID, Name: "一等奖", Probability: 10, IsActive: true, DisplayOrder: 1},
		{CampaignID: campaign.ID, Name: "二等奖", Probability: 30, IsActive: true, DisplayOrder: 2},
	}
	for i := range rewards {
		if err := db.Create(&rewards[i]).Error; err != nil {
			t.Fatalf("create reward failed: %v", err)
		}
	}

	got, err := repo.GetByIDWithRewards(campaign.ID)
	if err != nil {
		t.Fatalf("get with rewards failed: %v", err)
	}
	if got == nil || len(got.Rewards) != 3 {
		t.Fatalf("expected campaign with 3 rewards, got: %+v", got)
	}
	for i, name := range []string{"一等奖", "二等奖", "三等奖"} {
		if got.Rewards[i].Name != name {
			t.Fatalf("reward %d: expected %s, got: %s", i, name, got.Rewards[i].Name)
		}
	}

	missing, err := repo.GetByIDWithRewards(9999)
	if err != nil {
		t.Fatalf("get missing campaign failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing campaign, got: %+v", missing)
	}
}

func TestCampaignRepositoryListFilter(t *testing.T) {
	repo, db := setupCampaignRepositoryTest(t)
	now := time.Now()
	createCampaignFixture(t, db, "春节转盘", true, now.Add(-1*time.Hour), now.Add(1*time.Hour))
	inactive := createCampaignFixture(t, db, "下线活动", false, now.Add(-1*time.Hour), now.Add(1*time.Hour))

	scratch := models.Campaign{
		Title:             "周末刮刮乐",
		GameType:          constants.GameTypeScratch,
		IsActive:          true,
		StartsAt:          now.Add(-1 * time.Hour),
		EndsAt:            now.Add(1 * time.Hour),
		MaxPlaysPerPlayer: 1,
	}
	if err := db.Create(&scratch).Error; err != nil {
		t.Fatalf("create scratch campaign failed: %v", err)
	}

	campaigns, total, err := repo.List(CampaignListFilter{GameType: constants.GameTypeScratch, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by game type failed: %v", err)
	}
	if total != 1 || len(campaigns) != 1 || campaigns[0].Title != "周末刮刮乐" {
		t.Fatalf("expected scratch campaign only, got total=%d: %+v", total, campaigns)
	}

	active := false
	campaigns, total, err = repo.List(CampaignListFilter{IsActive: &active, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list inactive failed: %v", err)
	}
	if total != 1 || campaigns[0].ID != inactive.ID {
		t.Fatalf("expected inactive campaign only, got total=%d: %+v", total, campaigns)
	}

	_, total, err = repo.List(CampaignListFilter{Keyword: "转盘", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by keyword failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 campaign matching keyword, got: %d", total)
	}
}
