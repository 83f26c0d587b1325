package public

import (
	"errors"

	"github.com/pharmatrace/internal/http/response"
	"github.com/pharmatrace/internal/service"

	"github.com/gin-gonic/gin"
)

// BatchRegister 登记新批次
func (h *Handler) BatchRegister(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	var req service.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	batch, err := h.BatchService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBatchIDRequired),
			errors.Is(err, service.ErrMedicinesRequired),
			errors.Is(err, service.ErrMedicineFieldInvalid),
			errors.Is(err, service.ErrMedicineExpiryFormat):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "批次登记失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"batch":            batch,
		"verification_url": h.BatchService.VerificationURL(batch.BatchID),
	})
}

// BatchRecallRequest 批次召回请求
type BatchRecallRequest struct {
	BatchID string `json:"batch_id" binding:"required"`
}

// BatchRecall 召回批次
func (h *Handler) BatchRecall(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	var req BatchRecallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	if err := h.BatchService.Recall(req.BatchID); err != nil {
		switch {
		case errors.Is(err, service.ErrBatchIDRequired):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrBatchNotFound):
			respondError(c, response.CodeNotFound, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "批次召回失败", err)
		}
		return
	}

	response.SuccessWithMsg(c, "批次已召回", gin.H{"batch_id": req.BatchID})
}
