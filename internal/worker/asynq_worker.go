package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/luckyplay-next/internal/logger"
	"github.com/luckyplay-next/internal/provider"
	"github.com/luckyplay-next/internal/queue"
	"github.com/luckyplay-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskVoucherQRBackfill, c.handleVoucherQRBackfill)
	mux.HandleFunc(queue.TaskVoucherExpire, c.handleVoucherExpire)
}

func (c *Consumer) handleVoucherQRBackfill(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_voucher_qr_backfill_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.VoucherQRBackfillPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_voucher_qr_backfill_unmarshal_failed", "error", err)
		return err
	}
	if payload.VoucherID == 0 {
		logger.Debugw("worker_voucher_qr_backfill_skip_invalid_payload", "voucher_id", payload.VoucherID)
		return nil
	}
	if c.VoucherService == nil {
		logger.Warnw("worker_voucher_qr_backfill_skip_service_nil", "voucher_id", payload.VoucherID)
		return nil
	}
	if err := c.VoucherService.BackfillQR(payload.VoucherID); err != nil {
		// 卡券已不存在时无需再重试
		if errors.Is(err, service.ErrVoucherNotFound) {
			logger.Debugw("worker_voucher_qr_backfill_skip_not_found", "voucher_id", payload.VoucherID)
			return nil
		}
		logger.Warnw("worker_voucher_qr_backfill_failed", "voucher_id", payload.VoucherID, "error", err)
		return err
	}
	logger.Infow("worker_voucher_qr_backfill_done", "voucher_id", payload.VoucherID)
	return nil
}

func (c *Consumer) handleVoucherExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_voucher_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if c.VoucherService == nil {
		logger.Warnw("worker_voucher_expire_skip_service_nil")
		return nil
	}
	affected, err := c.VoucherService.ExpireSweep()
	if err != nil {
		logger.Warnw("worker_voucher_expire_failed", "error", err)
		return err
	}
	logger.Infow("worker_voucher_expire_done", "affected", affected)
	return nil
}
