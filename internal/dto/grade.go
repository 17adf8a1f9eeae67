package dto

import "time"

// ── 成绩模块 DTO ──

// GradeRequest 创建/更新成绩请求（更新为整体替换）
// StudentID / CourseID 缺省为 0，由 Service 层判定为必填缺失
type GradeRequest struct {
	Code        string     `json:"code"        binding:"omitempty,max=20"`
	StudentID   int64      `json:"studentId"   binding:"omitempty,min=0"`
	CourseID    int64      `json:"courseId"    binding:"omitempty,min=0"`
	Score       *float64   `json:"score"       binding:"omitempty,gte=0,lte=20"`
	Status      string     `json:"status"      binding:"omitempty,max=30"`
	SessionType string     `json:"sessionType" binding:"omitempty,max=80"`
	Comment     string     `json:"comment"     binding:"omitempty,max=500"`
	UpdatedAt   *time.Time `json:"updatedAt"`
}
