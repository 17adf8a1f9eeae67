package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/service"
	"school-admin/backend/pkg/response"
)

// GradeHandler 成绩模块 HTTP 处理器
type GradeHandler struct {
	gradeSvc service.GradeService
}

// NewGradeHandler 创建 GradeHandler
func NewGradeHandler(gradeSvc service.GradeService) *GradeHandler {
	return &GradeHandler{gradeSvc: gradeSvc}
}

// ListGrades 成绩列表（含学生与课程）
// GET /api/v1/grades
func (h *GradeHandler) ListGrades(c *gin.Context) {
	var q dto.GradeListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	grades, err := h.gradeSvc.List(c.Request.Context(), q.Criteria())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, grades, len(grades))
}

// GetSummary 成绩摘要
// GET /api/v1/grades/summary
func (h *GradeHandler) GetSummary(c *gin.Context) {
	summary, err := h.gradeSvc.Summary(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, summary)
}

// GetGrade 成绩详情
// GET /api/v1/grades/:id
func (h *GradeHandler) GetGrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	grade, err := h.gradeSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// CreateGrade 录入成绩
// POST /api/v1/grades
func (h *GradeHandler) CreateGrade(c *gin.Context) {
	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	grade, err := h.gradeSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.Created(c, grade)
}

// UpdateGrade 更新成绩
// PUT /api/v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, err)
		return
	}

	grade, err := h.gradeSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, grade)
}

// DeleteGrade 删除成绩
// DELETE /api/v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.gradeSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleGradeError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleGradeError 统一处理成绩模块业务错误
func (h *GradeHandler) handleGradeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGradeStudentRequired):
		response.BadRequest(c, 15001, "studentId 为必填项")
	case errors.Is(err, service.ErrGradeCourseRequired):
		response.BadRequest(c, 15002, "courseId 为必填项")
	case errors.Is(err, service.ErrGradeNotFound):
		response.NotFound(c, 15003, "成绩不存在")
	case errors.Is(err, service.ErrGradeStudentNotFound):
		response.NotFound(c, 15004, "学生不存在")
	case errors.Is(err, service.ErrGradeCourseNotFound):
		response.NotFound(c, 15005, "课程不存在")
	case errors.Is(err, service.ErrGradeDuplicate):
		response.Conflict(c, 15006, "该学生已有此课程的成绩")
	default:
		response.InternalError(c)
	}
}
