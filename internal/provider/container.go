package provider

import (
	"github.com/luckyplay-next/internal/cache"
	"github.com/luckyplay-next/internal/config"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/models"
	"github.com/luckyplay-next/internal/queue"
	"github.com/luckyplay-next/internal/repository"
	"github.com/luckyplay-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CampaignRepo repository.CampaignRepository
	RewardRepo   repository.RewardRepository
	PlayerRepo   repository.PlayerRepository
	PlayLogRepo  repository.PlayLogRepository
	VoucherRepo  repository.VoucherRepository

	// Services
	PlayerAuthService *service.PlayerAuthService
	CampaignService   *service.CampaignService
	PlayService       *service.PlayService
	VoucherService    *service.VoucherService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
	c.PlayerRepo = repository.NewPlayerRepository(db)
	c.PlayLogRepo = repository.NewPlayLogRepository(db)
	c.VoucherRepo = repository.NewVoucherRepository(db)
}

func (c *Container) initServices() {
	issuer := service.NewVoucherIssuer(c.Config.Voucher.RedeemBaseURL, c.Config.Voucher.ExpireDays)
	selector := service.NewRewardSelector(service.NewRandSource())

	c.PlayerAuthService = service.NewPlayerAuthService(c.Config, c.PlayerRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.RewardRepo)
	c.PlayService = service.NewPlayService(
		c.CampaignRepo,
		c.RewardRepo,
		c.PlayerRepo,
		c.PlayLogRepo,
		c.VoucherRepo,
		selector,
		issuer,
		c.QueueClient,
		c.Config.Play.MaxAttempts,
	)
	c.VoucherService = service.NewVoucherService(c.VoucherRepo, c.RewardRepo, issuer)
}
