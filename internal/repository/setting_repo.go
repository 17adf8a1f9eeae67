package repository

import (
	"context"

	"gorm.io/gorm"

	"school-admin/backend/internal/model"
)

// SettingRepository 系统设置数据访问接口
type SettingRepository interface {
	List(ctx context.Context) ([]model.AppSetting, error)
	GetByKey(ctx context.Context, key string) (*model.AppSetting, error)
	Create(ctx context.Context, setting *model.AppSetting) error
	Update(ctx context.Context, setting *model.AppSetting) error
}

type settingRepo struct {
	db *gorm.DB
}

// NewSettingRepo 创建 SettingRepository 实例
func NewSettingRepo(db *gorm.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) List(ctx context.Context) ([]model.AppSetting, error) {
	var settings []model.AppSetting
	err := r.db.WithContext(ctx).Order("key ASC").Find(&settings).Error
	return settings, err
}

func (r *settingRepo) GetByKey(ctx context.Context, key string) (*model.AppSetting, error) {
	var setting model.AppSetting
	if err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error; err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingRepo) Create(ctx context.Context, setting *model.AppSetting) error {
	return r.db.WithContext(ctx).Create(setting).Error
}

// Update 仅更新 value
func (r *settingRepo) Update(ctx context.Context, setting *model.AppSetting) error {
	return r.db.WithContext(ctx).
		Model(&model.AppSetting{}).
		Where("id = ?", setting.ID).
		Update("value", setting.Value).Error
}
