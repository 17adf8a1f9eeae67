package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/service"
	"school-admin/backend/pkg/response"
)

// SettingHandler 系统设置 HTTP 处理器
type SettingHandler struct {
	settingSvc service.SettingService
}

// NewSettingHandler 创建 SettingHandler
func NewSettingHandler(settingSvc service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// ListSettings 全部设置项（按 key 排序）
// GET /api/v1/settings
func (h *SettingHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKList(c, settings, len(settings))
}

// GetSetting 单个设置项
// GET /api/v1/settings/:key
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingSvc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, setting)
}

// CreateSetting 新增设置项
// POST /api/v1/settings
func (h *SettingHandler) CreateSetting(c *gin.Context) {
	var req dto.CreateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	setting, err := h.settingSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.Created(c, setting)
}

// UpdateSetting 修改设置值
// PUT /api/v1/settings/:key
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	setting, err := h.settingSvc.Update(c.Request.Context(), c.Param("key"), &req)
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, setting)
}

func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotFound):
		response.NotFound(c, 16001, "设置项不存在")
	case errors.Is(err, service.ErrSettingKeyExists):
		response.Conflict(c, 16002, "设置项已存在")
	default:
		response.InternalError(c)
	}
}
