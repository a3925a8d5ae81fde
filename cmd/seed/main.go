package main

import (
	"fmt"
	"time"

	"github.com/luckyplay-next/internal/config"
	"github.com/luckyplay-next/internal/constants"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/models"

	"github.com/shopspring/decimal"
)

func intPtr(v int) *int {
	return &v
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	now := time.Now()

	// 添加活动
	campaigns := []struct {
		Campaign models.Campaign
		Rewards  []models.Reward
	}{
		{
			Campaign: models.Campaign{
				Title:             "新春大转盘",
				Description:       "注册即可参与，每人 3 次机会，100% 有机会赢取现金红包。",
				GameType:          constants.GameTypeWheel,
				IsActive:          true,
				StartsAt:          now.Add(-24 * time.Hour),
				EndsAt:            now.AddDate(0, 1, 0),
				MaxPlaysPerPlayer: 3,
			},
			Rewards: []models.Reward{
				{
					Name:              "88 元现金券",
					Description:       "一等奖，限量 10 份",
					Icon:              "🧧",
					Probability:       1,
					TotalQuantity:     intPtr(10),
					RemainingQuantity: intPtr(10),
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(88)),
					IsActive:          true,
					DisplayOrder:      1,
				},
				{
					Name:              "18 元现金券",
					Description:       "二等奖，限量 100 份",
					Icon:              "💰",
					Probability:       8,
					TotalQuantity:     intPtr(100),
					RemainingQuantity: intPtr(100),
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(18)),
					IsActive:          true,
					DisplayOrder:      2,
				},
				{
					Name:              "5 元现金券",
					Description:       "三等奖，不限量",
					Icon:              "🎫",
					Probability:       25,
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(5)),
					IsActive:          true,
					DisplayOrder:      3,
				},
				{
					Name:         "谢谢参与",
					Description:  "下次再来",
					Icon:         "🍀",
					Probability:  66,
					Value:        models.NewMoneyFromDecimal(decimal.Zero),
					IsActive:     true,
					DisplayOrder: 4,
				},
			},
		},
		{
			Campaign: models.Campaign{
				Title:             "周末刮刮乐",
				Description:       "周末限定刮刮卡活动，每人 1 次机会。",
				GameType:          constants.GameTypeScratch,
				IsActive:          true,
				StartsAt:          now.Add(-2 * time.Hour),
				EndsAt:            now.AddDate(0, 0, 7),
				MaxPlaysPerPlayer: 1,
			},
			Rewards: []models.Reward{
				{
					Name:              "50 元购物券",
					Description:       "限量 5 份",
					Icon:              "🎁",
					Probability:       2.5,
					TotalQuantity:     intPtr(5),
					RemainingQuantity: intPtr(5),
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
					IsActive:          true,
					DisplayOrder:      1,
				},
				{
					Name:              "10 元购物券",
					Description:       "限量 50 份",
					Icon:              "🎟️",
					Probability:       17.5,
					TotalQuantity:     intPtr(50),
					RemainingQuantity: intPtr(50),
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
					IsActive:          true,
					DisplayOrder:      2,
				},
				{
					Name:         "谢谢参与",
					Description:  "感谢参与本次活动",
					Icon:         "🍀",
					Probability:  80,
					Value:        models.NewMoneyFromDecimal(decimal.Zero),
					IsActive:     true,
					DisplayOrder: 3,
				},
			},
		},
		{
			Campaign: models.Campaign{
				Title:             "中秋砸金蛋（未开始）",
				Description:       "用于演示未开始活动的资格校验。",
				GameType:          constants.GameTypeEgg,
				IsActive:          true,
				StartsAt:          now.AddDate(0, 0, 14),
				EndsAt:            now.AddDate(0, 1, 14),
				MaxPlaysPerPlayer: 2,
			},
			Rewards: []models.Reward{
				{
					Name:              "20 元现金券",
					Icon:              "🥚",
					Probability:       10,
					TotalQuantity:     intPtr(30),
					RemainingQuantity: intPtr(30),
					Value:             models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
					IsActive:          true,
					DisplayOrder:      1,
				},
				{
					Name:         "谢谢参与",
					Icon:         "🍀",
					Probability:  90,
					Value:        models.NewMoneyFromDecimal(decimal.Zero),
					IsActive:     true,
					DisplayOrder: 2,
				},
			},
		},
	}

	for _, item := range campaigns {
		var existing models.Campaign
		if err := models.DB.Where("title = ?", item.Campaign.Title).First(&existing).Error; err != nil {
			campaign := item.Campaign
			campaign.Rewards = item.Rewards
			if err := models.DB.Create(&campaign).Error; err != nil {
				stdLog.Printf("Failed to create campaign %s: %v", campaign.Title, err)
			} else {
				stdLog.Printf("Created campaign: %s (%d rewards)", campaign.Title, len(campaign.Rewards))
			}
		} else {
			stdLog.Printf("Campaign already exists: %s", existing.Title)
		}
	}

	// 添加演示玩家
	players := []models.Player{
		{Phone: "+8613800138000", DisplayName: "演示玩家", Status: constants.PlayerStatusActive},
		{Phone: "+8613800138001", DisplayName: "封禁演示", Status: constants.PlayerStatusBlocked},
	}

	for _, player := range players {
		var existing models.Player
		if err := models.DB.Where("phone = ?", player.Phone).First(&existing).Error; err != nil {
			if err := models.DB.Create(&player).Error; err != nil {
				stdLog.Printf("Failed to create player %s: %v", player.Phone, err)
			} else {
				stdLog.Printf("Created player: %s", player.Phone)
			}
		} else {
			stdLog.Printf("Player already exists: %s", existing.Phone)
		}
	}

	fmt.Println("\n✅ Test data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Campaigns (wheel + scratch + 未开始的 egg)")
	fmt.Println("- 9 Reward tiers (含限量、不限量与谢谢参与档)")
	fmt.Println("- 2 Players (1 active + 1 blocked)")
}
