package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pharmatrace/internal/config"

	"google.golang.org/genai"
)

// GeminiClient 基于 Google GenAI SDK 的生成式文本客户端
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient 创建 Gemini 客户端
// 凭据只来自进程配置（GEMINI_API_KEY），不会出现在任何对外响应中
func NewGeminiClient(ctx context.Context, cfg *config.GeminiConfig) (*GeminiClient, error) {
	if cfg == nil || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client failed: %w", err)
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClient{client: client, model: model}, nil
}

// drugInfoSchema 返回结构约束：四个字段全部必填
func drugInfoSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString},
			"use_cases": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"generic_alternative": {Type: genai.TypeString},
			"warnings":            {Type: genai.TypeString},
		},
		Required: []string{"description", "use_cases", "generic_alternative", "warnings"},
	}
}

// LookupDrugInfo 查询药品信息
func (c *GeminiClient) LookupDrugInfo(ctx context.Context, drugName string) (*DrugInfo, error) {
	prompt := fmt.Sprintf(
		"Provide information about the medicine %q: a short description, its common use cases, its generic alternative (chemical name), and key warnings.",
		drugName,
	)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   drugInfoSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("generate content failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	var info DrugInfo
	if err := json.Unmarshal([]byte(text), &info); err != nil {
		return nil, fmt.Errorf("parse model response failed: %w", err)
	}
	return &info, nil
}
