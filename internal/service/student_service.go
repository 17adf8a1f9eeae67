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

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrStudentEmailExists = errors.New("学生邮箱已存在")
	ErrStudentNameBlank   = errors.New("学生姓名不能为空")
)

// StudentService 学生业务接口
type StudentService interface {
	List(ctx context.Context, c filter.Criteria) ([]model.Student, error)
	Summary(ctx context.Context) (*stats.StudentSummary, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
	Create(ctx context.Context, req *dto.StudentRequest) (*model.Student, error)
	Update(ctx context.Context, id int64, req *dto.StudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── 查询 ──────────────────────

func (s *studentService) List(ctx context.Context, c filter.Criteria) ([]model.Student, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}
	return filter.Apply(students, filter.Students, c), nil
}

func (s *studentService) Summary(ctx context.Context) (*stats.StudentSummary, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}
	summary := stats.SummarizeStudents(students)
	return &summary, nil
}

func (s *studentService) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

// ────────────────────── 写入 ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.StudentRequest) (*model.Student, error) {
	if blank(req.FirstName) || blank(req.LastName) {
		return nil, ErrStudentNameBlank
	}
	if err := s.checkEmail(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	student := &model.Student{}
	applyStudentRequest(student, req, s.now())

	if err := s.repo.Student.Create(ctx, student); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_students_email") {
			return nil, ErrStudentEmailExists
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}
	return student, nil
}

// Update 整体替换学生字段
func (s *studentService) Update(ctx context.Context, id int64, req *dto.StudentRequest) (*model.Student, error) {
	if blank(req.FirstName) || blank(req.LastName) {
		return nil, ErrStudentNameBlank
	}
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, req.Email, id); err != nil {
		return nil, err
	}

	applyStudentRequest(student, req, s.now())

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_students_email") {
			return nil, ErrStudentEmailExists
		}
		s.logger.Error("更新学生失败", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Student.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("删除学生失败", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// checkEmail 邮箱已被其他学生占用时返回冲突；selfID 为当前更新的学生
func (s *studentService) checkEmail(ctx context.Context, email string, selfID int64) error {
	existing, err := s.repo.Student.GetByEmail(ctx, strings.TrimSpace(email))
	if err == nil {
		if existing.ID != selfID {
			return ErrStudentEmailExists
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生邮箱失败", zap.Error(err))
		return err
	}
	return nil
}

func applyStudentRequest(student *model.Student, req *dto.StudentRequest, now time.Time) {
	student.Code = model.StringPtr(strings.TrimSpace(req.Code))
	student.FirstName = strings.TrimSpace(req.FirstName)
	student.LastName = strings.TrimSpace(req.LastName)
	student.Email = strings.TrimSpace(req.Email)
	student.Program = model.StringPtr(req.Program)
	student.Level = model.StringPtr(req.Level)
	student.Status = model.StringPtr(req.Status)
	student.Average = req.Average
	student.UpdatedAt = timestamp(req.UpdatedAt, now)
}
