package dto

// ── 课程模块 DTO ──

// CourseRequest 创建/更新课程请求（更新为整体替换）
type CourseRequest struct {
	Code        string `json:"code"        binding:"omitempty,max=20"`
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"omitempty,max=500"`
	Department  string `json:"department"  binding:"omitempty,max=120"`
	Level       string `json:"level"       binding:"omitempty,max=50"`
	Hours       string `json:"hours"       binding:"omitempty,max=30"`
	Schedule    string `json:"schedule"    binding:"omitempty,max=120"`
	Status      string `json:"status"      binding:"omitempty,max=30"`
	TeacherID   *int64 `json:"teacherId"   binding:"omitempty,min=1"`
}
