package router

import (
	"fmt"
	"strings"

	"github.com/pharmatrace/internal/cache"
	"github.com/pharmatrace/internal/config"
	publichandlers "github.com/pharmatrace/internal/http/handlers/public"
	"github.com/pharmatrace/internal/logger"
	"github.com/pharmatrace/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "pt"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 公开验证页面（HTML）
	r.LoadHTMLGlob("web/templates/*.html")
	r.GET("/verify/:batch_id", publicHandler.VerifyBatchPage)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/verify/:batch_id", publicHandler.VerifyBatch)
			public.GET("/verify/:batch_id/qrcode", publicHandler.VerifyBatchQRCode)
			public.GET("/captcha/image", publicHandler.CaptchaImage)
			public.GET("/captcha/setting", publicHandler.CaptchaSetting)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 登录用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.UserMe)
			user.POST("/auth/logout", publicHandler.UserLogout)
			user.POST("/batches", publicHandler.BatchRegister)
			user.POST("/batches/recall", publicHandler.BatchRecall)
			user.POST("/drug-info", publicHandler.DrugInfoLookup)
		}
	}

	return r
}
