package public

import (
	"github.com/pharmatrace/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CaptchaImage 生成图片验证码
func (h *Handler) CaptchaImage(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "验证码生成失败", err)
		return
	}
	response.Success(c, challenge)
}

// CaptchaSetting 下发验证码场景开关
func (h *Handler) CaptchaSetting(c *gin.Context) {
	response.Success(c, gin.H{
		"login_enabled": h.CaptchaService.LoginSceneEnabled(),
	})
}
