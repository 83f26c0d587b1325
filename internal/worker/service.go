package worker

import (
	"context"
	"errors"
	"time"

	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/queue"
	"github.com/pharmatrace/internal/service"

	"github.com/hibiken/asynq"
)

const defaultExpirySweepInterval = time.Hour

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

	sweepInterval := time.Duration(cfg.Sweep.IntervalMinutes) * time.Minute
	if sweepInterval <= 0 {
		sweepInterval = defaultExpirySweepInterval
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
	if s.consumer != nil && s.consumer.BatchRepo != nil {
		go s.runExpirySweepLoop(ctx)
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

// runExpirySweepLoop 周期巡检过期批次
// 仅输出巡检报告，从不改写批次状态（过期只在读取时派生）
func (s *Service) runExpirySweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.BatchRepo == nil {
		return
	}
	runOnce := func() {
		now := time.Now()
		batches, err := s.consumer.BatchRepo.ListAll()
		if err != nil {
			logger.Warnw("worker_expiry_sweep_list_failed", "error", err)
			return
		}
		expired := 0
		for i := range batches {
			if service.EffectiveStatus(&batches[i], now) == constants.BatchStatusExpired {
				expired++
				logger.Infow("worker_expiry_sweep_expired_batch",
					"batch_id", batches[i].BatchID,
					"stored_status", batches[i].Status,
				)
			}
		}
		logger.Infow("worker_expiry_sweep_done", "total", len(batches), "expired", expired)
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
