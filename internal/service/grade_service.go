package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/filter"
	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
	"school-admin/backend/internal/stats"
	pkgerrors "school-admin/backend/pkg/errors"
)

// ── 成绩模块业务错误 ──

var (
	ErrGradeNotFound        = errors.New("成绩不存在")
	ErrGradeStudentRequired = errors.New("studentId 为必填项")
	ErrGradeCourseRequired  = errors.New("courseId 为必填项")
	ErrGradeStudentNotFound = errors.New("成绩关联的学生不存在")
	ErrGradeCourseNotFound  = errors.New("成绩关联的课程不存在")
	ErrGradeDuplicate       = errors.New("该学生已有此课程的成绩")
)

// GradeService 成绩业务接口
type GradeService interface {
	List(ctx context.Context, c filter.Criteria) ([]model.Enrollment, error)
	Summary(ctx context.Context) (*stats.GradeSummary, error)
	GetByID(ctx context.Context, id int64) (*model.Enrollment, error)
	Create(ctx context.Context, req *dto.GradeRequest) (*model.Enrollment, error)
	Update(ctx context.Context, id int64, req *dto.GradeRequest) (*model.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

type gradeService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewGradeService 创建 GradeService 实例
func NewGradeService(repo *repository.Repository, logger *zap.Logger) GradeService {
	return &gradeService{repo: repo, logger: logger, now: time.Now}
}

func (s *gradeService) List(ctx context.Context, c filter.Criteria) ([]model.Enrollment, error) {
	grades, err := s.repo.Enrollment.List(ctx)
	if err != nil {
		s.logger.Error("查询成绩列表失败", zap.Error(err))
		return nil, err
	}
	return filter.Apply(grades, filter.Grades, c), nil
}

func (s *gradeService) Summary(ctx context.Context) (*stats.GradeSummary, error) {
	grades, err := s.repo.Enrollment.List(ctx)
	if err != nil {
		s.logger.Error("查询成绩列表失败", zap.Error(err))
		return nil, err
	}
	summary := stats.SummarizeGrades(grades)
	return &summary, nil
}

func (s *gradeService) GetByID(ctx context.Context, id int64) (*model.Enrollment, error) {
	grade, err := s.repo.Enrollment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGradeNotFound
		}
		s.logger.Error("查询成绩失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return grade, nil
}

// Create 校验顺序：必填 → 学生/课程存在 → (学生, 课程) 唯一；任一失败均不写库
func (s *gradeService) Create(ctx context.Context, req *dto.GradeRequest) (*model.Enrollment, error) {
	if err := s.validate(ctx, req, 0); err != nil {
		return nil, err
	}

	grade := &model.Enrollment{}
	s.apply(grade, req)

	if err := s.repo.Enrollment.Create(ctx, grade); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_enrollments_student_course") {
			return nil, ErrGradeDuplicate
		}
		s.logger.Error("创建成绩失败", zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, grade.ID)
}

func (s *gradeService) Update(ctx context.Context, id int64, req *dto.GradeRequest) (*model.Enrollment, error) {
	grade, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req, id); err != nil {
		return nil, err
	}

	s.apply(grade, req)

	if err := s.repo.Enrollment.Update(ctx, grade); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_enrollments_student_course") {
			return nil, ErrGradeDuplicate
		}
		s.logger.Error("更新成绩失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *gradeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Enrollment.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeNotFound
		}
		s.logger.Error("删除成绩失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *gradeService) validate(ctx context.Context, req *dto.GradeRequest, selfID int64) error {
	if req.StudentID <= 0 {
		return ErrGradeStudentRequired
	}
	if req.CourseID <= 0 {
		return ErrGradeCourseRequired
	}

	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int64("studentId", req.StudentID), zap.Error(err))
		return err
	}
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGradeCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Int64("courseId", req.CourseID), zap.Error(err))
		return err
	}

	existing, err := s.repo.Enrollment.GetByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err == nil && existing.ID != selfID {
		return ErrGradeDuplicate
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询成绩唯一性失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *gradeService) apply(g *model.Enrollment, req *dto.GradeRequest) {
	g.Code = model.StringPtr(strings.TrimSpace(req.Code))
	g.StudentID = req.StudentID
	g.CourseID = req.CourseID
	g.Score = req.Score
	g.Status = model.StringPtr(req.Status)
	g.SessionType = model.StringPtr(req.SessionType)
	g.Comment = model.StringPtr(req.Comment)
	g.UpdatedAt = timestamp(req.UpdatedAt, s.now())
	g.Student = nil
	g.Course = nil
}
