package dto

import "school-admin/backend/internal/stats"

// DashboardResponse 仪表盘响应；GeneratedAt 为本次重算时间
type DashboardResponse struct {
	stats.DashboardStats
	GeneratedAt string `json:"generatedAt"`
}
