package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/luckyplay-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupRewardRepositoryTest(t *testing.T) (*GormRewardRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:reward_repository_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Campaign{}, &models.Reward{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewRewardRepository(db), db
}

func createRewardFixture(t *testing.T, db *gorm.DB, remaining *int, active bool, order int) *models.Reward {
	t.Helper()
	reward := models.Reward{
		CampaignID:        1,
		Name:              fmt.Sprintf("奖品-%d", order),
		Probability:       10,
		TotalQuantity:     remaining,
		RemainingQuantity: remaining,
		Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		IsActive:          active,
		DisplayOrder:      order,
	}
	if err := db.Create(&reward).Error; err != nil {
		t.Fatalf("create reward failed: %v", err)
	}
	return &reward
}

func quantity(v int) *int {
	return &v
}

func TestRewardRepositoryDecrementRemainingStopsAtZero(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	reward := createRewardFixture(t, db, quantity(2), true, 1)

	for i := 0; i < 2; i++ {
		ok, err := repo.DecrementRemaining(reward.ID)
		if err != nil {
			t.Fatalf("decrement %d failed: %v", i+1, err)
		}
		if !ok {
			t.Fatalf("decrement %d: expected success", i+1)
		}
	}

	// 余量为 0 后扣减必须失败
	ok, err := repo.DecrementRemaining(reward.ID)
	if err != nil {
		t.Fatalf("decrement at zero failed: %v", err)
	}
	if ok {
		t.Fatal("expected decrement to fail at zero stock")
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("query reward failed: %v", err)
	}
	if stored.RemainingQuantity == nil || *stored.RemainingQuantity != 0 {
		t.Fatalf("expected remaining=0, got: %v", stored.RemainingQuantity)
	}
}

func TestRewardRepositoryDecrementRemainingUnlimited(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	reward := createRewardFixture(t, db, nil, true, 1)

	// 不限量奖品没有可扣减的余量列，条件更新不命中
	ok, err := repo.DecrementRemaining(reward.ID)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if ok {
		t.Fatal("expected no decrement for unlimited reward")
	}

	var stored models.Reward
	if err := db.First(&stored, reward.ID).Error; err != nil {
		t.Fatalf("query reward failed: %v", err)
	}
	if stored.RemainingQuantity != nil {
		t.Fatalf("expected remaining to stay nil, got: %v", *stored.RemainingQuantity)
	}
}

func TestRewardRepositoryIncrementRemaining(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	limited := createRewardFixture(t, db, quantity(3), true, 1)
	unlimited := createRewardFixture(t, db, nil, true, 2)

	if err := repo.IncrementRemaining(limited.ID); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	var stored models.Reward
	if err := db.First(&stored, limited.ID).Error; err != nil {
		t.Fatalf("query reward failed: %v", err)
	}
	if stored.RemainingQuantity == nil || *stored.RemainingQuantity != 4 {
		t.Fatalf("expected remaining=4, got: %v", stored.RemainingQuantity)
	}

	// 不限量奖品回补不产生变化
	if err := repo.IncrementRemaining(unlimited.ID); err != nil {
		t.Fatalf("increment unlimited failed: %v", err)
	}
	stored = models.Reward{}
	if err := db.First(&stored, unlimited.ID).Error; err != nil {
		t.Fatalf("query reward failed: %v", err)
	}
	if stored.RemainingQuantity != nil {
		t.Fatalf("expected remaining to stay nil, got: %v", *stored.RemainingQuantity)
	}
}

func TestRewardRepositoryListActiveByCampaignOrder(t *testing.T) {
	repo, db := setupRewardRepositoryTest(t)
	createRewardFixture(t, db, quantity(5), true, 3)
	createRewardFixture(t, db, quantity(5), true, 1)
	createRewardFixture(t, db, quantity(5), false, 2)

	rewards, err := repo.ListActiveByCampaignForUpdate(1)
	if err != nil {
		t.Fatalf("list active rewards failed: %v", err)
	}
	if len(rewards) != 2 {
		t.Fatalf("expected 2 active rewards, got: %d", len(rewards))
	}
	if rewards[0].DisplayOrder != 1 || rewards[1].DisplayOrder != 3 {
		t.Fatalf("expected display order 1,3, got: %d,%d", rewards[0].DisplayOrder, rewards[1].DisplayOrder)
	}
}
