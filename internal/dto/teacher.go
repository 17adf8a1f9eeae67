package dto

// ── 教师模块 DTO ──

// TeacherRequest 创建/更新教师请求（更新为整体替换）
type TeacherRequest struct {
	Code       string `json:"code"       binding:"omitempty,max=20"`
	FirstName  string `json:"firstName"  binding:"required,max=100"`
	LastName   string `json:"lastName"   binding:"required,max=100"`
	Email      string `json:"email"      binding:"required,email,max=200"`
	Status     string `json:"status"     binding:"omitempty,max=30"`
	Subject    string `json:"subject"    binding:"omitempty,max=150"`
	Seniority  string `json:"seniority"  binding:"omitempty,max=50"`
	Hours      string `json:"hours"      binding:"omitempty,max=30"`
	Phone      string `json:"phone"      binding:"omitempty,max=30"`
	Department string `json:"department" binding:"omitempty,max=120"`
}
