package router

import (
	"fmt"
	"strings"

	"github.com/luckyplay-next/internal/cache"
	"github.com/luckyplay-next/internal/config"
	publichandlers "github.com/luckyplay-next/internal/http/handlers/public"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "lp"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.rate_limited",
	}
	playRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:play", redisPrefix),
		WindowSeconds: cfg.Play.RateLimitWindowSec,
		MaxRequests:   cfg.Play.RateLimitMax,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/campaigns", publicHandler.GetCampaigns)
			public.GET("/campaigns/:id", publicHandler.GetCampaign)
			public.GET("/vouchers/:code", publicHandler.GetVoucherByCode)
			public.POST("/vouchers/:code/redeem", publicHandler.RedeemVoucher)
		}

		// 玩家认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("phone")), publicHandler.PlayerRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("phone")), publicHandler.PlayerLogin)
		}

		// 玩家接口（需鉴权）
		player := apiV1.Group("")
		player.Use(PlayerJWTAuthMiddleware(cfg.PlayerJWT.SecretKey, c.PlayerRepo))
		{
			player.GET("/me", publicHandler.GetCurrentPlayer)
			player.GET("/me/plays", publicHandler.GetMyPlays)
			player.GET("/me/vouchers", publicHandler.GetMyVouchers)
			player.GET("/campaigns/:id/eligibility", publicHandler.CheckEligibility)
			player.POST("/campaigns/:id/play", RateLimitMiddleware(redisClient, playRule, KeyByPlayerID), publicHandler.Play)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
