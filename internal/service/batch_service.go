package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/models"
	"github.com/pharmatrace/internal/queue"
	"github.com/pharmatrace/internal/repository"
)

// BatchService 批次登记、召回与验证服务
type BatchService struct {
	cfg         *config.Config
	batchRepo   repository.BatchRepository
	queueClient *queue.Client
}

// NewBatchService 创建批次服务
func NewBatchService(cfg *config.Config, batchRepo repository.BatchRepository, queueClient *queue.Client) *BatchService {
	return &BatchService{
		cfg:         cfg,
		batchRepo:   batchRepo,
		queueClient: queueClient,
	}
}

// RegisterInput 批次登记输入
type RegisterInput struct {
	BatchID   string            `json:"batch_id"`
	Medicines []models.Medicine `json:"medicines"`
}

// Register 登记新批次
// 校验全部通过之前不会触达存储；新批次状态固定为 Authentic
func (s *BatchService) Register(input RegisterInput) (*models.Batch, error) {
	batchID := strings.TrimSpace(input.BatchID)
	if batchID == "" {
		return nil, ErrBatchIDRequired
	}
	if len(input.Medicines) == 0 {
		return nil, ErrMedicinesRequired
	}
	medicines := make(models.Medicines, 0, len(input.Medicines))
	for _, med := range input.Medicines {
		name := strings.TrimSpace(med.Name)
		quantity := strings.TrimSpace(med.Quantity)
		expiry := strings.TrimSpace(med.ExpiryDate)
		if name == "" || quantity == "" || expiry == "" {
			return nil, ErrMedicineFieldInvalid
		}
		if _, err := time.Parse(constants.MedicineExpiryDateLayout, expiry); err != nil {
			return nil, ErrMedicineExpiryFormat
		}
		medicines = append(medicines, models.Medicine{
			Name:       name,
			Quantity:   quantity,
			ExpiryDate: expiry,
		})
	}

	batch := &models.Batch{
		BatchID:   batchID,
		Medicines: medicines,
		Status:    constants.BatchStatusAuthentic,
	}
	if err := s.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Recall 将批次状态改写为 Recalled
// 默认沿用宽松语义：未命中任何行也视为成功；
// 开启 recall.strict_not_found 后未命中返回批次不存在
func (s *BatchService) Recall(batchID string) error {
	trimmed := strings.TrimSpace(batchID)
	if trimmed == "" {
		return ErrBatchIDRequired
	}

	affected, err := s.batchRepo.UpdateStatus(trimmed, constants.BatchStatusRecalled)
	if err != nil {
		return err
	}
	if affected == 0 {
		if s.cfg.Recall.StrictNotFound {
			return ErrBatchNotFound
		}
		logger.Warnw("recall_batch_not_matched", "batch_id", trimmed)
		return nil
	}

	if err := s.queueClient.EnqueueRecallNotice(queue.RecallNoticePayload{BatchID: trimmed}); err != nil {
		// 通知失败不影响召回本身
		logger.Errorw("recall_notice_enqueue_failed", "batch_id", trimmed, "error", err)
	}
	return nil
}

// Verify 查询批次并计算展示状态
// 未命中返回 ErrBatchNotFound，此时不做任何状态派生
func (s *BatchService) Verify(batchID string, now time.Time) (*models.Batch, string, error) {
	trimmed := strings.TrimSpace(batchID)
	if trimmed == "" {
		return nil, "", ErrBatchIDRequired
	}
	batch, err := s.batchRepo.GetByBatchID(trimmed)
	if err != nil {
		return nil, "", err
	}
	if batch == nil {
		return nil, "", ErrBatchNotFound
	}
	return batch, EffectiveStatus(batch, now), nil
}

// VerificationURL 生成批次的公开验证链接
func (s *BatchService) VerificationURL(batchID string) string {
	base := strings.TrimRight(strings.TrimSpace(s.cfg.Verify.PublicBaseURL), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	return fmt.Sprintf("%s/verify/%s", base, batchID)
}
