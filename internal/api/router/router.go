package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"school-admin/backend/config"
	"school-admin/backend/internal/api/handler"
	"school-admin/backend/internal/api/middleware"
	"school-admin/backend/internal/model"
	"school-admin/backend/pkg/jwt"
	"school-admin/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
// 读接口公开；所有写操作与导出需要管理员凭证。rdb 为 nil 时黑名单与限流降级
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Redis 未启用时保持接口值为 nil
	var (
		blacklist middleware.TokenBlacklist
		limiter   middleware.RateLimiter
	)
	if rdb != nil {
		blacklist = rdb
		limiter = rdb
	}

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(int64(cfg.Server.BodyLimitMB) << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "redis": rdb != nil})
	})

	requireAdmin := []gin.HandlerFunc{
		middleware.JWTAuth(jwtMgr, blacklist, logger),
		middleware.RoleAuth(model.RoleAdmin),
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块
		auth := v1.Group("/auth")
		{
			auth.POST("/login",
				middleware.RateLimit(limiter, cfg.Server.LoginLimit, cfg.Server.LoginWindowDuration(), logger),
				h.Auth.Login)
			auth.POST("/logout", middleware.JWTAuth(jwtMgr, blacklist, logger), h.Auth.Logout)
			auth.GET("/me", middleware.JWTAuth(jwtMgr, blacklist, logger), h.Auth.Me)
		}

		// 学生模块
		students := v1.Group("/students")
		{
			students.GET("", h.Student.ListStudents)
			students.GET("/summary", h.Student.GetSummary)
			students.GET("/:id", h.Student.GetStudent)

			w := students.Group("", requireAdmin...)
			w.POST("", h.Student.CreateStudent)
			w.POST("/import", h.Student.ImportStudents)
			w.PUT("/:id", h.Student.UpdateStudent)
			w.DELETE("/:id", h.Student.DeleteStudent)
		}

		// 教师模块
		teachers := v1.Group("/teachers")
		{
			teachers.GET("", h.Teacher.ListTeachers)
			teachers.GET("/summary", h.Teacher.GetSummary)
			teachers.GET("/:id", h.Teacher.GetTeacher)

			w := teachers.Group("", requireAdmin...)
			w.POST("", h.Teacher.CreateTeacher)
			w.PUT("/:id", h.Teacher.UpdateTeacher)
			w.DELETE("/:id", h.Teacher.DeleteTeacher)
		}

		// 课程模块
		courses := v1.Group("/courses")
		{
			courses.GET("", h.Course.ListCourses)
			courses.GET("/summary", h.Course.GetSummary)
			courses.GET("/:id", h.Course.GetCourse)

			w := courses.Group("", requireAdmin...)
			w.POST("", h.Course.CreateCourse)
			w.PUT("/:id", h.Course.UpdateCourse)
			w.DELETE("/:id", h.Course.DeleteCourse)
		}

		// 成绩模块
		grades := v1.Group("/grades")
		{
			grades.GET("", h.Grade.ListGrades)
			grades.GET("/summary", h.Grade.GetSummary)
			grades.GET("/:id", h.Grade.GetGrade)

			w := grades.Group("", requireAdmin...)
			w.POST("", h.Grade.CreateGrade)
			w.PUT("/:id", h.Grade.UpdateGrade)
			w.DELETE("/:id", h.Grade.DeleteGrade)
		}

		// 系统设置
		settings := v1.Group("/settings")
		{
			settings.GET("", h.Setting.ListSettings)
			settings.GET("/:key", h.Setting.GetSetting)

			w := settings.Group("", requireAdmin...)
			w.POST("", h.Setting.CreateSetting)
			w.PUT("/:key", h.Setting.UpdateSetting)
		}

		// 仪表盘
		v1.GET("/dashboard", h.Dashboard.GetDashboard)

		// 导出模块
		export := v1.Group("/export", requireAdmin...)
		{
			export.GET("/students.xlsx", h.Export.ExportStudents)
			export.GET("/grades.xlsx", h.Export.ExportGrades)
			export.GET("/planning.ics", h.Export.ExportPlanning)
		}
	}

	return r
}
