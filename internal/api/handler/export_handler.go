package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"school-admin/backend/internal/service"
	"school-admin/backend/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc   service.ExportService
	planningSvc service.PlanningService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService, planningSvc service.PlanningService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc, planningSvc: planningSvc}
}

// ExportStudents 导出学生名单
// GET /api/v1/export/students.xlsx
func (h *ExportHandler) ExportStudents(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportStudents(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf)
}

// ExportGrades 导出成绩与统计汇总
// GET /api/v1/export/grades.xlsx
func (h *ExportHandler) ExportGrades(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportGrades(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	attachment(c, filename, contentTypeXLSX, buf)
}

// ExportPlanning 导出开放课程的每周课表（iCalendar）
// GET /api/v1/export/planning.ics
func (h *ExportHandler) ExportPlanning(c *gin.Context) {
	buf, filename, err := h.planningSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}
	attachment(c, filename, contentTypeICS, buf)
}

// attachment 设置下载响应头并写出文件内容
func attachment(c *gin.Context, filename, contentType string, buf *bytes.Buffer) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanningTimezone):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 17001, "课表时区配置无效", err.Error())
	default:
		response.InternalError(c)
	}
}
