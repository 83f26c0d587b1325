package service

import (
	"strings"
	"time"

	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/models"
)

// EffectiveStatus 计算批次在 now 时刻的展示状态
// 任一药品已过期即返回 Expired，该判定优先于落库的 Recalled 状态；
// 结果只用于展示，从不写回存储。
// 有效期按整日计算：标注 2026-03-01 的药品在 2026-03-01 当天仍然有效，
// 次日零点（本地时区）起视为过期。无法解析的有效期不参与判定。
func EffectiveStatus(batch *models.Batch, now time.Time) string {
	if batch == nil {
		return constants.BatchStatusNotFound
	}
	for _, med := range batch.Medicines {
		if medicineExpired(med, now) {
			return constants.BatchStatusExpired
		}
	}
	return batch.Status
}

func medicineExpired(med models.Medicine, now time.Time) bool {
	raw := strings.TrimSpace(med.ExpiryDate)
	if raw == "" {
		return false
	}
	day, err := time.ParseInLocation(constants.MedicineExpiryDateLayout, raw, now.Location())
	if err != nil {
		return false
	}
	endOfDay := day.AddDate(0, 0, 1)
	return !now.Before(endOfDay)
}
