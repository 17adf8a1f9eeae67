package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/filter"
	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
	"school-admin/backend/internal/stats"
	pkgerrors "school-admin/backend/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound        = errors.New("课程不存在")
	ErrCourseCodeExists      = errors.New("课程代码已存在")
	ErrCourseTeacherNotFound = errors.New("授课教师不存在")
	ErrCourseTitleBlank      = errors.New("课程名称不能为空")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context, c filter.Criteria) ([]model.Course, error)
	Summary(ctx context.Context) (*stats.CourseSummary, error)
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	Create(ctx context.Context, req *dto.CourseRequest) (*model.Course, error)
	Update(ctx context.Context, id int64, req *dto.CourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

func (s *courseService) List(ctx context.Context, c filter.Criteria) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	return filter.Apply(courses, filter.Courses, c), nil
}

func (s *courseService) Summary(ctx context.Context) (*stats.CourseSummary, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}
	summary := stats.SummarizeCourses(courses)
	return &summary, nil
}

func (s *courseService) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return course, nil
}

func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest) (*model.Course, error) {
	if blank(req.Title) {
		return nil, ErrCourseTitleBlank
	}
	if err := s.validate(ctx, req, 0); err != nil {
		return nil, err
	}

	course := &model.Course{}
	applyCourseRequest(course, req)

	if err := s.repo.Course.Create(ctx, course); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_courses_code") {
			return nil, ErrCourseCodeExists
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以带出授课教师
	return s.GetByID(ctx, course.ID)
}

func (s *courseService) Update(ctx context.Context, id int64, req *dto.CourseRequest) (*model.Course, error) {
	if blank(req.Title) {
		return nil, ErrCourseTitleBlank
	}
	course, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req, id); err != nil {
		return nil, err
	}

	applyCourseRequest(course, req)

	if err := s.repo.Course.Update(ctx, course); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_courses_code") {
			return nil, ErrCourseCodeExists
		}
		s.logger.Error("更新课程失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete 删除课程，其成绩记录随之删除
func (s *courseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("删除课程失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// validate 检查课程代码唯一性与授课教师是否存在
func (s *courseService) validate(ctx context.Context, req *dto.CourseRequest, selfID int64) error {
	if code := strings.TrimSpace(req.Code); code != "" {
		existing, err := s.repo.Course.GetByCode(ctx, code)
		if err == nil && existing.ID != selfID {
			return ErrCourseCodeExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询课程代码失败", zap.Error(err))
			return err
		}
	}

	if req.TeacherID != nil {
		if _, err := s.repo.Teacher.GetByID(ctx, *req.TeacherID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseTeacherNotFound
			}
			s.logger.Error("查询授课教师失败", zap.Error(err))
			return err
		}
	}
	return nil
}

func applyCourseRequest(c *model.Course, req *dto.CourseRequest) {
	c.Code = model.StringPtr(strings.TrimSpace(req.Code))
	c.Title = strings.TrimSpace(req.Title)
	c.Description = model.StringPtr(req.Description)
	c.Department = model.StringPtr(req.Department)
	c.Level = model.StringPtr(req.Level)
	c.Hours = model.StringPtr(req.Hours)
	c.Schedule = model.StringPtr(req.Schedule)
	c.Status = model.StringPtr(req.Status)
	c.TeacherID = req.TeacherID
	c.Teacher = nil
}
