package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/filter"
	"school-admin/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestStudentService() (*studentService, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewStudentService(repo, zap.NewNop()).(*studentService)
	return svc, mocks
}

func strp(s string) *string { return &s }

func floatp(v float64) *float64 { return &v }

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc, _ := setupTestStudentService()
	fixed := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	st, err := svc.Create(context.Background(), &dto.StudentRequest{
		FirstName: " Amine ",
		LastName:  "Idrissi",
		Email:     "amine@school.com",
		Level:     "2IIR",
		Status:    model.StudentStatusActive,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if st.ID == 0 || st.FirstName != "Amine" {
		t.Errorf("创建结果不正确: %+v", st)
	}
	if st.UpdatedAt == nil || !st.UpdatedAt.Equal(fixed) {
		t.Errorf("updatedAt 缺省应为当前时间，实际=%v", st.UpdatedAt)
	}
	if st.Program != nil {
		t.Error("空字段应保存为 nil")
	}
	if st.DisplayCode() != "STD-0001" {
		t.Errorf("期望展示编号 STD-0001，实际=%s", st.DisplayCode())
	}
}

func TestStudentService_Create_DuplicateEmail(t *testing.T) {
	svc, mocks := setupTestStudentService()
	mocks.student.add(model.Student{FirstName: "A", LastName: "B", Email: "dup@school.com"})

	_, err := svc.Create(context.Background(), &dto.StudentRequest{FirstName: "C", LastName: "D", Email: "dup@school.com"})
	if !errors.Is(err, ErrStudentEmailExists) {
		t.Errorf("期望 ErrStudentEmailExists，实际: %v", err)
	}
}

func TestStudentService_Create_BlankName(t *testing.T) {
	svc, mocks := setupTestStudentService()

	_, err := svc.Create(context.Background(), &dto.StudentRequest{FirstName: "   ", LastName: "Alaoui", Email: "y@school.com"})
	if !errors.Is(err, ErrStudentNameBlank) {
		t.Errorf("期望 ErrStudentNameBlank，实际: %v", err)
	}
	if len(mocks.student.items) != 0 {
		t.Errorf("空白姓名不应写入，实际写入 %d 条", len(mocks.student.items))
	}
}

// ── Update 测试 ──

func TestStudentService_Update_KeepsOwnEmail(t *testing.T) {
	svc, mocks := setupTestStudentService()
	st := mocks.student.add(model.Student{FirstName: "A", LastName: "B", Email: "a@school.com", Average: floatp(12)})

	updated, err := svc.Update(context.Background(), st.ID, &dto.StudentRequest{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@school.com",
		Level:     "3IIR",
	})
	if err != nil {
		t.Fatalf("保留自身邮箱的更新应成功: %v", err)
	}
	if updated.Level == nil || *updated.Level != "3IIR" {
		t.Errorf("期望 Level=3IIR，实际=%v", updated.Level)
	}
	if updated.Average != nil {
		t.Error("整体替换时未提供的 average 应清空")
	}
}

func TestStudentService_Update_EmailTakenByOther(t *testing.T) {
	svc, mocks := setupTestStudentService()
	mocks.student.add(model.Student{FirstName: "A", LastName: "B", Email: "a@school.com"})
	other := mocks.student.add(model.Student{FirstName: "C", LastName: "D", Email: "c@school.com"})

	_, err := svc.Update(context.Background(), other.ID, &dto.StudentRequest{FirstName: "C", LastName: "D", Email: "a@school.com"})
	if !errors.Is(err, ErrStudentEmailExists) {
		t.Errorf("期望 ErrStudentEmailExists，实际: %v", err)
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, err := svc.Update(context.Background(), 42, &dto.StudentRequest{FirstName: "A", LastName: "B", Email: "x@school.com"})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestStudentService_Update_BlankName(t *testing.T) {
	svc, mocks := setupTestStudentService()
	st := mocks.student.add(model.Student{FirstName: "A", LastName: "B", Email: "a@school.com"})

	_, err := svc.Update(context.Background(), st.ID, &dto.StudentRequest{FirstName: "A", LastName: "\t", Email: "a@school.com"})
	if !errors.Is(err, ErrStudentNameBlank) {
		t.Errorf("期望 ErrStudentNameBlank，实际: %v", err)
	}
	if mocks.student.items[st.ID].LastName != "B" {
		t.Errorf("原记录不应被修改，实际 LastName=%q", mocks.student.items[st.ID].LastName)
	}
}

// ── Delete / List 测试 ──

func TestStudentService_Delete(t *testing.T) {
	svc, mocks := setupTestStudentService()
	st := mocks.student.add(model.Student{FirstName: "A", LastName: "B", Email: "a@school.com"})

	if err := svc.Delete(context.Background(), st.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := svc.Delete(context.Background(), st.ID); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("重复删除期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestStudentService_List_LevelAndStatus(t *testing.T) {
	svc, mocks := setupTestStudentService()
	mocks.student.add(model.Student{FirstName: "A", LastName: "Actif", Email: "a@school.com", Level: strp("2IIR"), Status: strp("Actif")})
	mocks.student.add(model.Student{FirstName: "S", LastName: "Suspendu", Email: "s@school.com", Level: strp("2IIR"), Status: strp("Suspendu")})

	got, err := svc.List(context.Background(), filter.Criteria{Exact: map[string]string{"level": "2IIR", "status": "Actif"}})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(got) != 1 || got[0].LastName != "Actif" {
		t.Errorf("期望仅返回 Actif 学生，实际=%+v", got)
	}

	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if summary.Total != 2 || summary.Active != 1 || summary.Suspended != 1 {
		t.Errorf("摘要不正确: %+v", summary)
	}
}
