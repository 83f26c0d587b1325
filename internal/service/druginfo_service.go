package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pharmatrace/internal/cache"
	"github.com/pharmatrace/internal/config"
	"github.com/pharmatrace/internal/logger"
)

// DrugInfo 药品信息（生成式文本服务返回的四个固定字段）
type DrugInfo struct {
	Description        string   `json:"description"`
	UseCases           []string `json:"use_cases"`
	GenericAlternative string   `json:"generic_alternative"`
	Warnings           string   `json:"warnings"`
}

// Alternative 替代药品条目
// 库存、规格、剂型均为展示用的固定占位值，不对应任何真实库存
type Alternative struct {
	Name     string `json:"name"`
	Stock    string `json:"stock"`
	Strength string `json:"strength"`
	Form     string `json:"form"`
}

// GenerativeClient 生成式文本服务客户端抽象
type GenerativeClient interface {
	LookupDrugInfo(ctx context.Context, drugName string) (*DrugInfo, error)
}

// DrugInfoService 药品信息查询服务
type DrugInfoService struct {
	cfg    *config.Config
	client GenerativeClient
}

// NewDrugInfoService 创建药品信息查询服务
func NewDrugInfoService(cfg *config.Config, client GenerativeClient) *DrugInfoService {
	return &DrugInfoService{cfg: cfg, client: client}
}

// Lookup 查询药品信息
// 空名称在本地直接拒绝，不触达上游；上游任何失败统一归并为一条用户可读的错误
func (s *DrugInfoService) Lookup(ctx context.Context, drugName string) (*DrugInfo, error) {
	trimmed := strings.TrimSpace(drugName)
	if trimmed == "" {
		return nil, ErrDrugNameRequired
	}
	if s.client == nil {
		return nil, ErrDrugInfoUnavailable
	}

	cacheKey := drugInfoCacheKey(trimmed)
	var cached DrugInfo
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	timeout := time.Duration(s.cfg.Gemini.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := s.client.LookupDrugInfo(lookupCtx, trimmed)
	if err != nil {
		logger.Errorw("drug_info_lookup_failed", "drug_name", trimmed, "error", err)
		return nil, ErrDrugInfoUnavailable
	}
	if info == nil {
		return nil, ErrDrugInfoUnavailable
	}

	ttl := time.Duration(s.cfg.Gemini.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := cache.SetJSON(ctx, cacheKey, info, ttl); err != nil {
		logger.Warnw("drug_info_cache_write_failed", "drug_name", trimmed, "error", err)
	}

	return info, nil
}

// BuildAlternatives 根据通用名生成两条固定形态的替代药品展示条目
func BuildAlternatives(genericName string) []Alternative {
	name := strings.TrimSpace(genericName)
	if name == "" {
		name = "Generic equivalent"
	}
	return []Alternative{
		{
			Name:     fmt.Sprintf("%s 250mg", name),
			Stock:    "In Stock",
			Strength: "250mg",
			Form:     "Tablet",
		},
		{
			Name:     fmt.Sprintf("%s 500mg", name),
			Stock:    "Limited Stock",
			Strength: "500mg",
			Form:     "Capsule",
		},
	}
}

func drugInfoCacheKey(drugName string) string {
	return "druginfo:" + strings.ToLower(drugName)
}
