//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
	"school-admin/backend/pkg/database"
	pkgerrors "school-admin/backend/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=school_admin_test sslmode=disable TimeZone=UTC"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "获取底层连接失败: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "迁移失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func uniq(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano())
}

// setupTestData 创建教师、课程、学生并返回清理函数
func setupTestData(t *testing.T) (teacher *model.Teacher, course *model.Course, student *model.Student, cleanup func()) {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewRepository(testDB)

	teacher = &model.Teacher{FirstName: "Karim", LastName: "Tazi", Email: uniq("t") + "@school.com"}
	if err := repo.Teacher.Create(ctx, teacher); err != nil {
		t.Fatalf("创建教师失败: %v", err)
	}

	course = &model.Course{Title: "Java", Code: model.StringPtr(uniq("C")), TeacherID: &teacher.ID}
	if err := repo.Course.Create(ctx, course); err != nil {
		t.Fatalf("创建课程失败: %v", err)
	}

	student = &model.Student{FirstName: "Amine", LastName: "Idrissi", Email: uniq("s") + "@school.com"}
	if err := repo.Student.Create(ctx, student); err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	cleanup = func() {
		testDB.Where("id = ?", student.ID).Delete(&model.Student{})
		testDB.Where("id = ?", course.ID).Delete(&model.Course{})
		testDB.Where("id = ?", teacher.ID).Delete(&model.Teacher{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: 删除教师后课程保留且 teacher_id 置空
// ═══════════════════════════════════════════════════════════

func TestTeacherDelete_DetachesCourses(t *testing.T) {
	teacher, course, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Teacher.Delete(ctx, teacher.ID); err != nil {
		t.Fatalf("删除教师失败: %v", err)
	}

	found, err := repo.Course.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("删除教师后课程应保留: %v", err)
	}
	if found.TeacherID != nil || found.Teacher != nil {
		t.Errorf("期望 teacher_id 为空，实际=%v", found.TeacherID)
	}

	if err := repo.Teacher.Delete(ctx, teacher.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("重复删除期望 ErrRecordNotFound，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 唯一约束
// ═══════════════════════════════════════════════════════════

func TestEnrollment_DuplicatePair(t *testing.T) {
	_, course, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := &model.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := repo.Enrollment.Create(ctx, first); err != nil {
		t.Fatalf("创建成绩失败: %v", err)
	}

	dup := &model.Enrollment{StudentID: student.ID, CourseID: course.ID}
	err := repo.Enrollment.Create(ctx, dup)
	if !pkgerrors.IsUniqueViolation(err, "uq_enrollments_student_course") {
		t.Errorf("期望唯一约束冲突，实际: %v", err)
	}

	if _, err := repo.Enrollment.GetByStudentAndCourse(ctx, student.ID, course.ID); err != nil {
		t.Errorf("按学生+课程查询失败: %v", err)
	}
}

func TestStudent_DuplicateEmail(t *testing.T) {
	_, _, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	dup := &model.Student{FirstName: "X", LastName: "Y", Email: student.Email}
	err := repo.Student.Create(context.Background(), dup)
	if !pkgerrors.IsUniqueViolation(err, "uq_students_email") {
		t.Errorf("期望邮箱唯一约束冲突，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 级联删除
// ═══════════════════════════════════════════════════════════

func TestStudentDelete_CascadesEnrollments(t *testing.T) {
	_, course, student, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	e := &model.Enrollment{StudentID: student.ID, CourseID: course.ID}
	if err := repo.Enrollment.Create(ctx, e); err != nil {
		t.Fatalf("创建成绩失败: %v", err)
	}
	if err := repo.Student.Delete(ctx, student.ID); err != nil {
		t.Fatalf("删除学生失败: %v", err)
	}
	if _, err := repo.Enrollment.GetByID(ctx, e.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("学生删除后成绩应级联删除，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: 事务
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	s := &model.Student{FirstName: "Tx", LastName: "Rollback", Email: uniq("tx") + "@school.com"}
	if err := txRepo.Student.Create(ctx, s); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建学生失败: %v", err)
	}
	tx.Rollback()

	if _, err := repo.Student.GetByID(ctx, s.ID); err == nil {
		testDB.Where("id = ?", s.ID).Delete(&model.Student{})
		t.Fatal("期望回滚后查不到学生，但实际查到了")
	}
}

func TestSetting_UpdateValueOnly(t *testing.T) {
	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	key := uniq("test.key.")
	s := &model.AppSetting{Key: key, Value: model.StringPtr("a")}
	if err := repo.Setting.Create(ctx, s); err != nil {
		t.Fatalf("创建设置失败: %v", err)
	}
	defer testDB.Where("id = ?", s.ID).Delete(&model.AppSetting{})

	s.Value = model.StringPtr("b")
	if err := repo.Setting.Update(ctx, s); err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}
	found, err := repo.Setting.GetByKey(ctx, key)
	if err != nil {
		t.Fatalf("查询设置失败: %v", err)
	}
	if found.Value == nil || *found.Value != "b" {
		t.Errorf("期望 value=b，实际=%v", found.Value)
	}
}
