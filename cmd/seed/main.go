package main

import (
	"time"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示账号
	if err := models.InitDefaultUser("demo@pharmatrace.local", "pharmatrace123"); err != nil {
		stdLog.Printf("Failed to create demo user: %v", err)
	} else {
		stdLog.Printf("Demo user ready: demo@pharmatrace.local")
	}

	nextYear := time.Now().AddDate(1, 0, 0).Format(constants.MedicineExpiryDateLayout)

	// 添加演示批次
	batches := []models.Batch{
		{
			BatchID: "BATCH-2026-001",
			Medicines: models.Medicines{
				{Name: "Paracetamol", Quantity: "5000", ExpiryDate: nextYear},
				{Name: "Ibuprofen", Quantity: "3000", ExpiryDate: nextYear},
			},
			Status: constants.BatchStatusAuthentic,
		},
		{
			BatchID: "BATCH-2023-017",
			Medicines: models.Medicines{
				{Name: "Amoxicillin", Quantity: "1200", ExpiryDate: "2024-06-30"},
			},
			Status: constants.BatchStatusAuthentic,
		},
		{
			BatchID: "BATCH-2026-009",
			Medicines: models.Medicines{
				{Name: "Aspirin", Quantity: "8000", ExpiryDate: nextYear},
			},
			Status: constants.BatchStatusRecalled,
		},
	}

	for _, batch := range batches {
		var existing models.Batch
		if err := models.DB.Where("batch_id = ?", batch.BatchID).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&batch).Error; err != nil {
				stdLog.Printf("Failed to create batch %s: %v", batch.BatchID, err)
			} else {
				stdLog.Printf("Created batch: %s (%s)", batch.BatchID, batch.Status)
			}
		} else {
			stdLog.Printf("Batch already exists: %s", batch.BatchID)
		}
	}

	stdLog.Printf("Seed completed")
}
