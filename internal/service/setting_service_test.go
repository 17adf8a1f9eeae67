package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"school-admin/backend/internal/dto"
)

func setupTestSettingService() SettingService {
	repo, _ := newMockRepository()
	return NewSettingService(repo, zap.NewNop())
}

func TestSettingService_CreateAndGet(t *testing.T) {
	svc := setupTestSettingService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, &dto.CreateSettingRequest{Key: "school.name", Value: strp("Académie Digitale")}); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, &dto.CreateSettingRequest{Key: "school.name"}); !errors.Is(err, ErrSettingKeyExists) {
		t.Errorf("期望 ErrSettingKeyExists，实际: %v", err)
	}

	got, err := svc.Get(ctx, "school.name")
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if got.Value == nil || *got.Value != "Académie Digitale" {
		t.Errorf("期望 value=Académie Digitale，实际=%v", got.Value)
	}
}

func TestSettingService_Update(t *testing.T) {
	svc := setupTestSettingService()
	ctx := context.Background()
	_, _ = svc.Create(ctx, &dto.CreateSettingRequest{Key: "school.timezone", Value: strp("GMT")})

	updated, err := svc.Update(ctx, "school.timezone", &dto.UpdateSettingRequest{Value: strp("GMT+1 (Casablanca)")})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Key != "school.timezone" || *updated.Value != "GMT+1 (Casablanca)" {
		t.Errorf("更新结果不正确: %+v", updated)
	}

	list, _ := svc.List(ctx)
	if len(list) != 1 || *list[0].Value != "GMT+1 (Casablanca)" {
		t.Errorf("更新未持久化: %+v", list)
	}
}

func TestSettingService_NotFound(t *testing.T) {
	svc := setupTestSettingService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("期望 ErrSettingNotFound，实际: %v", err)
	}
	if _, err := svc.Update(context.Background(), "missing", &dto.UpdateSettingRequest{}); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("期望 ErrSettingNotFound，实际: %v", err)
	}
}
