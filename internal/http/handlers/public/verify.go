package public

import (
	"errors"
	"net/http"
	"time"

	"github.com/pharmatrace/internal/constants"
	"github.com/pharmatrace/internal/http/response"
	"github.com/pharmatrace/internal/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// VerifyBatch 公开批次验证接口
// 状态分三层：未命中显示 Not Found（不做派生）；
// 命中后先做过期派生；否则展示落库状态。
func (h *Handler) VerifyBatch(c *gin.Context) {
	batchID := c.Param("batch_id")

	batch, status, err := h.BatchService.Verify(batchID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchIDRequired):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrBatchNotFound):
			response.ErrorWithData(c, response.CodeNotFound, service.ErrBatchNotFound.Error(), gin.H{
				"batch_id": batchID,
				"status":   constants.BatchStatusNotFound,
			})
		default:
			respondError(c, response.CodeInternal, "批次查询失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"batch_id":   batch.BatchID,
		"status":     status,
		"medicines":  batch.Medicines,
		"created_at": batch.CreatedAt,
	})
}

// VerifyBatchPage 公开验证 HTML 页面
func (h *Handler) VerifyBatchPage(c *gin.Context) {
	batchID := c.Param("batch_id")

	batch, status, err := h.BatchService.Verify(batchID, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrBatchNotFound) || errors.Is(err, service.ErrBatchIDRequired) {
			c.HTML(http.StatusNotFound, "verify.html", gin.H{
				"BatchID": batchID,
				"Status":  constants.BatchStatusNotFound,
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "verify.html", gin.H{
			"BatchID": batchID,
			"Status":  "",
			"Error":   "批次查询失败，请稍后重试",
		})
		return
	}

	c.HTML(http.StatusOK, "verify.html", gin.H{
		"BatchID":   batch.BatchID,
		"Status":    status,
		"Medicines": batch.Medicines,
		"CreatedAt": batch.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// VerifyBatchQRCode 验证链接二维码（PNG）
func (h *Handler) VerifyBatchQRCode(c *gin.Context) {
	batchID := c.Param("batch_id")
	url := h.BatchService.VerificationURL(batchID)

	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		respondError(c, response.CodeInternal, "二维码生成失败", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
