package provider

import (
	"context"

	"github.com/pharmatrace/internal/cache"
	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/models"
	"github.com/pharmatrace/internal/queue"
	"github.com/pharmatrace/internal/repository"
	"github.com/pharmatrace/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo  repository.UserRepository
	BatchRepo repository.BatchRepository

	// Services
	UserAuthService *service.UserAuthService
	BatchService    *service.BatchService
	DrugInfoService *service.DrugInfoService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BatchRepo = repository.NewBatchRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.BatchService = service.NewBatchService(c.Config, c.BatchRepo, c.QueueClient)

	// 生成式文本客户端缺少凭据时服务降级为不可用，接口返回统一错误
	var generativeClient service.GenerativeClient
	geminiClient, err := service.NewGeminiClient(context.Background(), &c.Config.Gemini)
	if err != nil {
		logger.Warnw("provider_init_gemini_failed", "error", err)
	} else {
		generativeClient = geminiClient
	}
	c.DrugInfoService = service.NewDrugInfoService(c.Config, generativeClient)
}
