package dto

import "time"

// ── 学生模块 DTO ──

// StudentRequest 创建/更新学生请求（更新为整体替换）
type StudentRequest struct {
	Code      string     `json:"code"      binding:"omitempty,max=20"`
	FirstName string     `json:"firstName" binding:"required,max=100"`
	LastName  string     `json:"lastName"  binding:"required,max=100"`
	Email     string     `json:"email"     binding:"required,email,max=200"`
	Program   string     `json:"program"   binding:"omitempty,max=150"`
	Level     string     `json:"level"     binding:"omitempty,max=50"`
	Status    string     `json:"status"    binding:"omitempty,max=30"`
	Average   *float64   `json:"average"   binding:"omitempty,gte=0,lte=20"`
	UpdatedAt *time.Time `json:"updatedAt"`
}
