// Package seed 空库初始化：默认管理员、系统设置、课程、教师与学生。
// 每类数据仅在对应表为空时写入，重复启动不会产生重复数据。
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"school-admin/backend/config"
	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
)

// Seeder 初始数据写入器
type Seeder struct {
	cfg    *config.SeedConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewSeeder 创建 Seeder
func NewSeeder(cfg *config.SeedConfig, repo *repository.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

// Run 在单个事务中写入缺失的初始数据；seed.enabled=false 时跳过
func (s *Seeder) Run(ctx context.Context) (err error) {
	if !s.cfg.Enabled {
		s.logger.Info("初始数据写入已关闭")
		return nil
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer func() {
		if tx == nil {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		if err != nil {
			tx.Rollback()
			return
		}
		err = tx.Commit().Error
	}()

	repo := s.repo.WithTx(tx)
	steps := []struct {
		name string
		fn   func(context.Context, *repository.Repository) (int, error)
	}{
		{"admin", s.seedAdmin},
		{"settings", s.seedSettings},
		{"courses", s.seedCourses},
		{"teachers", s.seedTeachers},
		{"students", s.seedStudents},
	}
	for _, step := range steps {
		n, err := step.fn(ctx, repo)
		if err != nil {
			return fmt.Errorf("写入初始数据 %s 失败: %w", step.name, err)
		}
		if n > 0 {
			s.logger.Info("初始数据已写入", zap.String("table", step.name), zap.Int("count", n))
		}
	}
	return nil
}

// ── 管理员 ──

func (s *Seeder) seedAdmin(ctx context.Context, repo *repository.Repository) (int, error) {
	count, err := repo.Admin.Count(ctx)
	if err != nil || count > 0 {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("密码哈希失败: %w", err)
	}
	admin := &model.AdminUser{
		Email:        s.cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		CreatedAt:    s.now().UTC(),
	}
	if err := repo.Admin.Create(ctx, admin); err != nil {
		return 0, err
	}
	s.logger.Info("已创建默认管理员", zap.String("email", admin.Email))
	return 1, nil
}

// ── 系统设置 ──

var defaultSettings = [][2]string{
	{"school.name", "Académie Digitale"},
	{"school.address", "123 Avenue de la Connaissance, Rabat"},
	{"school.supportEmail", "support@school.com"},
	{"school.timezone", "GMT+1 (Casablanca)"},
}

func (s *Seeder) seedSettings(ctx context.Context, repo *repository.Repository) (int, error) {
	existing, err := repo.Setting.List(ctx)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for _, kv := range defaultSettings {
		if err := repo.Setting.Create(ctx, &model.AppSetting{Key: kv[0], Value: model.StringPtr(kv[1])}); err != nil {
			return 0, err
		}
	}
	return len(defaultSettings), nil
}

// ── 课程 ──

var defaultCourses = []struct{ code, title, description string }{
	{"CRS-RESEAUX", "Réseaux", "Fondamentaux des réseaux et protocoles."},
	{"CRS-WEB", "Développement web", "Front-end et back-end web modernes."},
	{"CRS-EMBAR", "Systèmes embarqués", "Programmation bas niveau et microcontrôleurs."},
	{"CRS-CYBER", "Cybersécurité", "Sécurisation des systèmes et réseau."},
	{"CRS-DATA", "Data science", "Analyse de données et statistiques appliquées."},
	{"CRS-IA", "Intelligence artificielle", "Bases de l'IA, modèles et applications."},
	{"CRS-CLOUD", "Cloud & DevOps", "CI/CD, conteneurs et infrastructures cloud."},
	{"CRS-BDD", "Bases de données", "Modélisation, SQL et optimisation."},
	{"CRS-ALGO", "Algorithmique", "Structures de données et complexité."},
	{"CRS-ARCHI", "Architecture systèmes", "Conception et architecture des SI."},
}

func (s *Seeder) seedCourses(ctx context.Context, repo *repository.Repository) (int, error) {
	existing, err := repo.Course.List(ctx)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for _, c := range defaultCourses {
		course := &model.Course{
			Code:        model.StringPtr(c.code),
			Title:       c.title,
			Description: model.StringPtr(c.description),
			Level:       model.StringPtr("IIR"),
			Status:      model.StringPtr(model.CourseStatusOpen),
		}
		if err := repo.Course.Create(ctx, course); err != nil {
			return 0, err
		}
	}
	return len(defaultCourses), nil
}

// ── 教师 ──

var defaultTeachers = []struct {
	code, first, last, email, status, subject, seniority, hours, phone string
}{
	{"TCH-001", "Ahmed", "Benali", "ahmed.benali@school.com", model.TeacherStatusActive, "Réseaux", "8 ans", "20h", "+212 6 12 34 56 78"},
	{"TCH-002", "Fatima", "Alaoui", "fatima.alaoui@school.com", model.TeacherStatusActive, "Développement web", "6 ans", "18h", "+212 6 23 45 67 89"},
	{"TCH-003", "Mohamed", "Idrissi", "mohamed.idrissi@school.com", model.TeacherStatusAvailable, "Systèmes embarqués", "10 ans", "22h", "+212 6 34 56 78 90"},
	{"TCH-004", "Aicha", "Tazi", "aicha.tazi@school.com", model.TeacherStatusActive, "Cybersécurité", "7 ans", "16h", "+212 6 45 67 89 01"},
	{"TCH-005", "Youssef", "Bennani", "youssef.bennani@school.com", model.TeacherStatusActive, "Data science", "5 ans", "20h", "+212 6 56 78 90 12"},
	{"TCH-006", "Sanae", "El Amrani", "sanae.elamrani@school.com", model.TeacherStatusActive, "Intelligence artificielle", "9 ans", "18h", "+212 6 67 89 01 23"},
	{"TCH-007", "Karim", "Chraibi", "karim.chraibi@school.com", model.TeacherStatusAvailable, "Cloud & DevOps", "4 ans", "20h", "+212 6 78 90 12 34"},
	{"TCH-008", "Nadia", "Fassi", "nadia.fassi@school.com", model.TeacherStatusActive, "Bases de données", "11 ans", "16h", "+212 6 89 01 23 45"},
	{"TCH-009", "Omar", "Berrada", "omar.berrada@school.com", model.TeacherStatusActive, "Algorithmique", "12 ans", "22h", "+212 6 90 12 34 56"},
}

func (s *Seeder) seedTeachers(ctx context.Context, repo *repository.Repository) (int, error) {
	existing, err := repo.Teacher.List(ctx)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	for _, t := range defaultTeachers {
		teacher := &model.Teacher{
			Code:       model.StringPtr(t.code),
			FirstName:  t.first,
			LastName:   t.last,
			Email:      t.email,
			Status:     model.StringPtr(t.status),
			Subject:    model.StringPtr(t.subject),
			Seniority:  model.StringPtr(t.seniority),
			Hours:      model.StringPtr(t.hours),
			Phone:      model.StringPtr(t.phone),
			Department: model.StringPtr("Informatique"),
		}
		if err := repo.Teacher.Create(ctx, teacher); err != nil {
			return 0, err
		}
	}
	return len(defaultTeachers), nil
}

// ── 学生 ──

const defaultProgram = "Ingénieur Informatique et Réseaux"

var defaultStudents = []struct {
	code, first, last, level, status string
	average                          float64
	daysAgo                          int
}{
	{"STU-001", "Youssef", "Alami", "1IIR", model.StudentStatusActive, 15.5, 5},
	{"STU-002", "Sara", "Bennani", "1IIR", model.StudentStatusActive, 16.2, 3},
	{"STU-003", "Mehdi", "Chraibi", "1IIR", model.StudentStatusPending, 12.8, 10},
	{"STU-004", "Amina", "El Fassi", "2IIR", model.StudentStatusActive, 17.5, 2},
	{"STU-005", "Omar", "Idrissi", "2IIR", model.StudentStatusActive, 14.3, 7},
	{"STU-006", "Fatima", "Alaoui", "2IIR", model.StudentStatusActive, 18.1, 1},
	{"STU-007", "Karim", "Tazi", "2IIR", model.StudentStatusSuspended, 9.5, 15},
	{"STU-008", "Nadia", "Berrada", "3IIR", model.StudentStatusActive, 16.8, 4},
	{"STU-009", "Hassan", "Benali", "3IIR", model.StudentStatusActive, 15.0, 6},
	{"STU-010", "Laila", "El Amrani", "3IIR", model.StudentStatusActive, 17.9, 2},
	{"STU-011", "Rachid", "Bennani", "3IIR", model.StudentStatusPending, 13.2, 12},
	{"STU-012", "Salma", "Chraibi", "3IIR", model.StudentStatusActive, 16.5, 3},
	{"STU-013", "Amine", "Idrissi", "4IIR", model.StudentStatusActive, 18.5, 1},
	{"STU-014", "Imane", "Tazi", "4IIR", model.StudentStatusActive, 17.2, 5},
	{"STU-015", "Bilal", "Alami", "4IIR", model.StudentStatusActive, 15.8, 8},
	{"STU-016", "Zineb", "El Fassi", "4IIR", model.StudentStatusPending, 11.5, 20},
	{"STU-017", "Anass", "Berrada", "4IIR", model.StudentStatusActive, 16.3, 4},
	{"STU-018", "Houda", "Benali", "4IIR", model.StudentStatusActive, 14.7, 6},
	{"STU-019", "Yassine", "Alaoui", "5IIR", model.StudentStatusActive, 18.8, 2},
	{"STU-020", "Sanae", "El Amrani", "5IIR", model.StudentStatusActive, 17.6, 3},
	{"STU-021", "Reda", "Bennani", "5IIR", model.StudentStatusActive, 16.0, 7},
	{"STU-022", "Khadija", "Chraibi", "5IIR", model.StudentStatusActive, 19.2, 1},
	{"STU-023", "Tarik", "Idrissi", "5IIR", model.StudentStatusActive, 15.4, 5},
	{"STU-024", "Meriem", "Tazi", "5IIR", model.StudentStatusSuspended, 8.9, 30},
	{"STU-025", "Hamza", "Alami", "1IIR", model.StudentStatusActive, 13.8, 9},
	{"STU-026", "Aicha", "El Fassi", "1IIR", model.StudentStatusActive, 16.7, 4},
	{"STU-027", "Mohamed", "Berrada", "2IIR", model.StudentStatusPending, 10.5, 18},
	{"STU-028", "Nour", "Benali", "3IIR", model.StudentStatusActive, 17.3, 2},
	{"STU-029", "Adil", "Alaoui", "4IIR", model.StudentStatusActive, 14.9, 6},
	{"STU-030", "Ibtissam", "El Amrani", "5IIR", model.StudentStatusActive, 18.4, 1},
}

// studentEmail prénom.nom@student.school.com，去掉空格并转小写
func studentEmail(first, last string) string {
	return strings.ToLower(first + "." + strings.ReplaceAll(last, " ", "") + "@student.school.com")
}

func (s *Seeder) seedStudents(ctx context.Context, repo *repository.Repository) (int, error) {
	existing, err := repo.Student.List(ctx)
	if err != nil || len(existing) > 0 {
		return 0, err
	}
	now := s.now().UTC()
	for _, st := range defaultStudents {
		avg := st.average
		updated := now.AddDate(0, 0, -st.daysAgo)
		student := &model.Student{
			Code:      model.StringPtr(st.code),
			FirstName: st.first,
			LastName:  st.last,
			Email:     studentEmail(st.first, st.last),
			Program:   model.StringPtr(defaultProgram),
			Level:     model.StringPtr(st.level),
			Status:    model.StringPtr(st.status),
			Average:   &avg,
			UpdatedAt: &updated,
		}
		if err := repo.Student.Create(ctx, student); err != nil {
			return 0, err
		}
	}
	return len(defaultStudents), nil
}
