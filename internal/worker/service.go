package worker

import (
	"context"
	"errors"
	"time"

	"github.com/luckyplay-next/internal/config"
	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultExpireSweepInterval = 10 * time.Minute

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Queue.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)

	sweepInterval := defaultExpireSweepInterval
	if cfg.Voucher.ExpireSweepMinutes > 0 {
		sweepInterval = time.Duration(cfg.Voucher.ExpireSweepMinutes) * time.Minute
	}
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.VoucherService != nil {
		go s.runVoucherExpireLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runVoucherExpireLoop 周期性刷新过期卡券并补偿缺失的二维码
func (s *Service) runVoucherExpireLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.VoucherService == nil {
		return
	}
	runOnce := func() {
		if _, err := s.consumer.VoucherService.ExpireSweep(); err != nil {
			logger.Warnw("worker_voucher_expire_sweep_failed", "error", err)
		}
		if _, err := s.consumer.VoucherService.BackfillMissingQR(100); err != nil {
			logger.Warnw("worker_voucher_qr_backfill_sweep_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
