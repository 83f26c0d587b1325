package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/provider"
	"github.com/pharmatrace/internal/queue"
	"github.com/pharmatrace/internal/service"

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
	mux.HandleFunc(queue.TaskRecallNotice, c.handleRecallNotice)
}

func (c *Consumer) handleRecallNotice(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_recall_notice_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.RecallNoticePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_recall_notice_unmarshal_failed", "error", err)
		return err
	}
	batchID := strings.TrimSpace(payload.BatchID)
	if batchID == "" {
		logger.Debugw("worker_recall_notice_skip_invalid_payload")
		return nil
	}
	batch, err := c.BatchRepo.GetByBatchID(batchID)
	if err != nil {
		logger.Warnw("worker_recall_notice_fetch_batch_failed", "batch_id", batchID, "error", err)
		return err
	}
	if batch == nil {
		logger.Debugw("worker_recall_notice_skip_batch_not_found", "batch_id", batchID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_recall_notice_skip_email_service_nil", "batch_id", batchID)
		return nil
	}
	if err := c.EmailService.SendRecallNotice(batch); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled),
			errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Debugw("worker_recall_notice_skip_email_unavailable", "batch_id", batchID, "error", err)
			return nil
		default:
			logger.Warnw("worker_recall_notice_send_failed", "batch_id", batchID, "error", err)
			return err
		}
	}
	logger.Infow("worker_recall_notice_sent", "batch_id", batchID)
	return nil
}
