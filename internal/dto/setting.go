package dto

// ── 系统设置 DTO ──

// CreateSettingRequest 新增设置项
type CreateSettingRequest struct {
	Key   string  `json:"key"   binding:"required,max=100"`
	Value *string `json:"value" binding:"omitempty,max=1000"`
}

// UpdateSettingRequest 更新设置值（key 不可修改）
type UpdateSettingRequest struct {
	Value *string `json:"value" binding:"omitempty,max=1000"`
}
