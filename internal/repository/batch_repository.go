package repository

import (
	"errors"

	"github.com/pharmatrace/internal/models"

	"gorm.io/gorm"
)

// BatchRepository 批次数据访问接口
type BatchRepository interface {
	Create(batch *models.Batch) error
	GetByBatchID(batchID string) (*models.Batch, error)
	UpdateStatus(batchID, status string) (int64, error)
	ListAll() ([]models.Batch, error)
}

// GormBatchRepository GORM 实现
type GormBatchRepository struct {
	db *gorm.DB
}

// NewBatchRepository 创建批次仓库
func NewBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// Create 写入新批次
func (r *GormBatchRepository) Create(batch *models.Batch) error {
	return r.db.Create(batch).Error
}

// GetByBatchID 根据批次号点查
// batch_id 上有唯一索引，命中至多一行；未命中返回 (nil, nil)
func (r *GormBatchRepository) GetByBatchID(batchID string) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.Where("batch_id = ?", batchID).First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &batch, nil
}

// UpdateStatus 无条件改写批次状态，返回命中行数由上层决定未命中语义
func (r *GormBatchRepository) UpdateStatus(batchID, status string) (int64, error) {
	result := r.db.Model(&models.Batch{}).Where("batch_id = ?", batchID).Update("status", status)
	return result.RowsAffected, result.Error
}

// ListAll 全量读取批次（过期巡检使用）
func (r *GormBatchRepository) ListAll() ([]models.Batch, error) {
	var batches []models.Batch
	if err := r.db.Order("id ASC").Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}
