package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
	pkgerrors "school-admin/backend/pkg/errors"
)

// ── 系统设置模块业务错误 ──

var (
	ErrSettingNotFound  = errors.New("设置项不存在")
	ErrSettingKeyExists = errors.New("设置项已存在")
)

// SettingService 系统设置业务接口
type SettingService interface {
	List(ctx context.Context) ([]model.AppSetting, error)
	Get(ctx context.Context, key string) (*model.AppSetting, error)
	Create(ctx context.Context, req *dto.CreateSettingRequest) (*model.AppSetting, error)
	Update(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*model.AppSetting, error)
}

type settingService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSettingService 创建 SettingService 实例
func NewSettingService(repo *repository.Repository, logger *zap.Logger) SettingService {
	return &settingService{repo: repo, logger: logger}
}

// ────────────────────── List / Get ──────────────────────

func (s *settingService) List(ctx context.Context) ([]model.AppSetting, error) {
	settings, err := s.repo.Setting.List(ctx)
	if err != nil {
		s.logger.Error("查询设置列表失败", zap.Error(err))
		return nil, err
	}
	return settings, nil
}

func (s *settingService) Get(ctx context.Context, key string) (*model.AppSetting, error) {
	setting, err := s.repo.Setting.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		s.logger.Error("查询设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return setting, nil
}

// ────────────────────── Create / Update ──────────────────────

func (s *settingService) Create(ctx context.Context, req *dto.CreateSettingRequest) (*model.AppSetting, error) {
	key := strings.TrimSpace(req.Key)
	if _, err := s.repo.Setting.GetByKey(ctx, key); err == nil {
		return nil, ErrSettingKeyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	setting := &model.AppSetting{Key: key, Value: req.Value}
	if err := s.repo.Setting.Create(ctx, setting); err != nil {
		if pkgerrors.IsUniqueViolation(err, "uq_app_settings_key") {
			return nil, ErrSettingKeyExists
		}
		s.logger.Error("创建设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return setting, nil
}

// Update 只修改 value，key 不可变
func (s *settingService) Update(ctx context.Context, key string, req *dto.UpdateSettingRequest) (*model.AppSetting, error) {
	setting, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	setting.Value = req.Value
	if err := s.repo.Setting.Update(ctx, setting); err != nil {
		s.logger.Error("更新设置失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return setting, nil
}
