package public

import "github.com/pharmatrace/internal/provider"

// Handler 对外接口处理器入口
// 包含登录用户侧 API 与公开验证 API。
type Handler struct {
	*provider.Container
}

// New 创建处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
