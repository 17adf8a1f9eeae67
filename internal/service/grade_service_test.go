package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/filter"
	"school-admin/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestGradeService() (GradeService, *mockRepos, *model.Student, *model.Course) {
	repo, mocks := newMockRepository()
	st := mocks.student.add(model.Student{FirstName: "Amine", LastName: "Idrissi", Email: "a@school.com"})
	c := mocks.course.add(model.Course{Title: "Java", Code: strp("INF-201")})
	return NewGradeService(repo, zap.NewNop()), mocks, st, c
}

// ── Create 测试 ──

func TestGradeService_Create_Success(t *testing.T) {
	svc, _, st, c := setupTestGradeService()

	g, err := svc.Create(context.Background(), &dto.GradeRequest{StudentID: st.ID, CourseID: c.ID, Score: floatp(15.5)})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if g.Student == nil || g.Course == nil {
		t.Error("返回的成绩应带出学生与课程")
	}
	if g.UpdatedAt == nil {
		t.Error("updatedAt 缺省应为当前时间")
	}
}

func TestGradeService_Create_MissingIDs(t *testing.T) {
	svc, mocks, st, c := setupTestGradeService()

	_, err := svc.Create(context.Background(), &dto.GradeRequest{CourseID: c.ID})
	if !errors.Is(err, ErrGradeStudentRequired) {
		t.Errorf("期望 ErrGradeStudentRequired，实际: %v", err)
	}
	_, err = svc.Create(context.Background(), &dto.GradeRequest{StudentID: st.ID})
	if !errors.Is(err, ErrGradeCourseRequired) {
		t.Errorf("期望 ErrGradeCourseRequired，实际: %v", err)
	}
	if mocks.enrollment.writes != 0 {
		t.Errorf("校验失败不应写库，实际写入 %d 次", mocks.enrollment.writes)
	}
}

func TestGradeService_Create_UnknownReferences(t *testing.T) {
	svc, _, st, c := setupTestGradeService()

	if _, err := svc.Create(context.Background(), &dto.GradeRequest{StudentID: 404, CourseID: c.ID}); !errors.Is(err, ErrGradeStudentNotFound) {
		t.Errorf("期望 ErrGradeStudentNotFound，实际: %v", err)
	}
	if _, err := svc.Create(context.Background(), &dto.GradeRequest{StudentID: st.ID, CourseID: 404}); !errors.Is(err, ErrGradeCourseNotFound) {
		t.Errorf("期望 ErrGradeCourseNotFound，实际: %v", err)
	}
}

func TestGradeService_Create_DuplicatePair(t *testing.T) {
	svc, mocks, st, c := setupTestGradeService()
	mocks.enrollment.add(model.Enrollment{StudentID: st.ID, CourseID: c.ID})

	_, err := svc.Create(context.Background(), &dto.GradeRequest{StudentID: st.ID, CourseID: c.ID, Score: floatp(12)})
	if !errors.Is(err, ErrGradeDuplicate) {
		t.Errorf("期望 ErrGradeDuplicate，实际: %v", err)
	}
	if len(mocks.enrollment.items) != 1 {
		t.Errorf("冲突时不应新增成绩，实际=%d 条", len(mocks.enrollment.items))
	}
}

// ── Update 测试 ──

func TestGradeService_Update_MoveOntoExistingPair(t *testing.T) {
	svc, mocks, st, c := setupTestGradeService()
	other := mocks.course.add(model.Course{Title: "Python"})
	mocks.enrollment.add(model.Enrollment{StudentID: st.ID, CourseID: c.ID})
	g := mocks.enrollment.add(model.Enrollment{StudentID: st.ID, CourseID: other.ID})

	_, err := svc.Update(context.Background(), g.ID, &dto.GradeRequest{StudentID: st.ID, CourseID: c.ID})
	if !errors.Is(err, ErrGradeDuplicate) {
		t.Errorf("期望 ErrGradeDuplicate，实际: %v", err)
	}

	updated, err := svc.Update(context.Background(), g.ID, &dto.GradeRequest{StudentID: st.ID, CourseID: other.ID, Score: floatp(9), Status: model.GradeStatusValidated})
	if err != nil {
		t.Fatalf("保持原组合的更新应成功: %v", err)
	}
	if updated.Score == nil || *updated.Score != 9 {
		t.Errorf("期望 score=9，实际=%v", updated.Score)
	}
}

// ── List / Summary 测试 ──

func TestGradeService_ListAndSummary(t *testing.T) {
	svc, mocks, st, c := setupTestGradeService()
	other := mocks.course.add(model.Course{Title: "Python", Code: strp("INF-300")})
	mocks.enrollment.add(model.Enrollment{StudentID: st.ID, CourseID: c.ID, Score: floatp(14), Status: strp(model.GradeStatusValidated)})
	mocks.enrollment.add(model.Enrollment{StudentID: st.ID, CourseID: other.ID, Status: strp(model.GradeStatusPending)})

	got, err := svc.List(context.Background(), filter.Criteria{Search: "inf-300"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(got) != 1 || got[0].CourseID != other.ID {
		t.Errorf("按课程代码搜索结果不正确: %+v", got)
	}

	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary 应成功: %v", err)
	}
	if s.Total != 2 || s.Scored != 1 || s.Average != 14 || s.Pending != 1 || s.Validated != 1 {
		t.Errorf("摘要不正确: %+v", s)
	}
}
