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

// ── 教师模块业务错误 ──

var (
	ErrTeacherNotFound    = errors.New("教师不存在")
	ErrTeacherEmailExists = errors.New("教师邮箱已存在")
	ErrTeacherNameBlank   = errors.New("教师姓名不能为空")
)

// TeacherService 教师业务接口
type TeacherService interface {
	List(ctx context.Context, c filter.Criteria) ([]model.Teacher, error)
	Summary(ctx context.Context) (*stats.TeacherSummary, error)
	GetByID(ctx context.Context, id int64) (*model.Teacher, error)
	Create(ctx context.Context, req *dto.TeacherRequest) (*model.Teacher, error)
	Update(ctx context.Context, id int64, req *dto.TeacherRequest) (*model.Teacher, error)
	Delete(ctx context.Context, id int64) error
}

type teacherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeacherService 创建 TeacherService 实例
func NewTeacherService(repo *repository.Repository, logger *zap.Logger) TeacherService {
	return &teacherService{repo: repo, logger: logger}
}

func (s *teacherService) List(ctx context.Context, c filter.Criteria) ([]model.Teacher, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	return filter.Apply(teachers, filter.Teachers, c), nil
}

func (s *teacherService) Summary(ctx context.Context) (*stats.TeacherSummary, error) {
	teachers, err := s.repo.Teacher.List(ctx)
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}
	summary := stats.SummarizeTeachers(teachers)
	return &summary, nil
}

func (s *teacherService) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	teacher, err := s.repo.Teacher.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeacherNotFound
		}
		s.logger.Error("查询教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) Create(ctx context.Context, req *dto.TeacherRequest) (*model.Teacher, error) {
	if blank(req.FirstName) || blank(req.LastName) {
		return nil, ErrTeacherNameBlank
	}
	if err := s.checkEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	teacher := &model.Teacher{}
	applyTeacherRequest(teacher, req)

	if err := s.repo.Teacher.Create(ctx, teacher); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_teachers_email") {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("创建教师失败", zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

func (s *teacherService) Update(ctx context.Context, id int64, req *dto.TeacherRequest) (*model.Teacher, error) {
	if blank(req.FirstName) || blank(req.LastName) {
		return nil, ErrTeacherNameBlank
	}
	teacher, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, req.Email, id); err != nil {
		return nil, err
	}

	applyTeacherRequest(teacher, req)

	if err := s.repo.Teacher.Update(ctx, teacher); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_teachers_email") {
			return nil, ErrTeacherEmailExists
		}
		s.logger.Error("更新教师失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return teacher, nil
}

// Delete 删除教师；其课程保留，授课教师置空
func (s *teacherService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Teacher.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		s.logger.Error("删除教师失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *teacherService) checkEmail(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.Teacher.GetByEmail(ctx, strings.TrimSpace(email))
	if err == nil {
		if existing.ID != selfID {
			return ErrTeacherEmailExists
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询教师邮箱失败", zap.Error(err))
		return err
	}
	return nil
}

func applyTeacherRequest(t *model.Teacher, req *dto.TeacherRequest) {
	t.Code = model.StringPtr(strings.TrimSpace(req.Code))
	t.FirstName = strings.TrimSpace(req.FirstName)
	t.LastName = strings.TrimSpace(req.LastName)
	t.Email = strings.TrimSpace(req.Email)
	t.Status = model.StringPtr(req.Status)
	t.Subject = model.StringPtr(req.Subject)
	t.Seniority = model.StringPtr(req.Seniority)
	t.Hours = model.StringPtr(req.Hours)
	t.Phone = model.StringPtr(req.Phone)
	t.Department = model.StringPtr(req.Department)
}
