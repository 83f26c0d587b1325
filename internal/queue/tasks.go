package queue

import (
	"encoding/json"

	"github.com/pharmatrace/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskRecallNotice 批次召回通知任务
	TaskRecallNotice = constants.TaskRecallNotice
)

// RecallNoticePayload 召回通知任务载荷
type RecallNoticePayload struct {
	BatchID string `json:"batch_id"`
}

// NewRecallNoticeTask 创建召回通知任务
func NewRecallNoticeTask(payload RecallNoticePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecallNotice, body), nil
}
