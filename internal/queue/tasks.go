package queue

import (
	"encoding/json"

	"github.com/luckyplay-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskVoucherQRBackfill 卡券二维码补偿渲染任务
	TaskVoucherQRBackfill = constants.TaskVoucherQRBackfill
	// TaskVoucherExpire 卡券过期清理任务
	TaskVoucherExpire = constants.TaskVoucherExpire
)

// VoucherQRBackfillPayload 二维码补偿任务载荷
type VoucherQRBackfillPayload struct {
	VoucherID uint `json:"voucher_id"`
}

// VoucherExpirePayload 卡券过期清理任务载荷
type VoucherExpirePayload struct{}

// NewVoucherQRBackfillTask 创建二维码补偿任务
func NewVoucherQRBackfillTask(payload VoucherQRBackfillPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoucherQRBackfill, body), nil
}

// NewVoucherExpireTask 创建卡券过期清理任务
func NewVoucherExpireTask() (*asynq.Task, error) {
	body, err := json.Marshal(VoucherExpirePayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskVoucherExpire, body), nil
}
