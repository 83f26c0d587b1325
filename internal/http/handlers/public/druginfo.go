package public

import (
	"errors"

	"github.com/pharmatrace/internal/http/response"
	"github.com/pharmatrace/internal/service"

	"github.com/gin-gonic/gin"
)

// DrugInfoRequest 药品信息查询请求
type DrugInfoRequest struct {
	DrugName string `json:"drugName"`
}

// DrugInfoLookup 查询药品信息并生成替代药品展示条目
func (h *Handler) DrugInfoLookup(c *gin.Context) {
	if _, ok := getUserID(c); !ok {
		return
	}

	var req DrugInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数不合法", err)
		return
	}

	info, err := h.DrugInfoService.Lookup(c.Request.Context(), req.DrugName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDrugNameRequired):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		case errors.Is(err, service.ErrDrugInfoUnavailable):
			respondError(c, response.CodeInternal, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "药品信息查询失败", err)
		}
		return
	}

	response.Success(c, gin.H{
		"info":         info,
		"alternatives": service.BuildAlternatives(info.GenericAlternative),
	})
}
