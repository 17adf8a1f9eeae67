package service

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
)

var errMockDB = errors.New("mock: 数据库不可用")

// ── 测试辅助 ──

type mockRepos struct {
	admin      *mockAdminRepo
	setting    *mockSettingRepo
	student    *mockStudentRepo
	teacher    *mockTeacherRepo
	course     *mockCourseRepo
	enrollment *mockEnrollmentRepo
}

// newMockRepository 组装 mock 仓储；成绩/课程查询会解析关联
func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		admin:   &mockAdminRepo{items: map[int64]*model.AdminUser{}},
		setting: &mockSettingRepo{items: map[string]*model.AppSetting{}},
		student: &mockStudentRepo{items: map[int64]*model.Student{}},
		teacher: &mockTeacherRepo{items: map[int64]*model.Teacher{}},
	}
	m.course = &mockCourseRepo{items: map[int64]*model.Course{}, teachers: m.teacher}
	m.enrollment = &mockEnrollmentRepo{items: map[int64]*model.Enrollment{}, students: m.student, courses: m.course}
	m.teacher.courses = m.course

	repo := &repository.Repository{
		Admin:      m.admin,
		Setting:    m.setting,
		Student:    m.student,
		Teacher:    m.teacher,
		Course:     m.course,
		Enrollment: m.enrollment,
	}
	return repo, m
}

func sortedIDs[T any](items map[int64]*T) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── Mock AdminUserRepository ──

type mockAdminRepo struct {
	items  map[int64]*model.AdminUser
	nextID int64
}

func (m *mockAdminRepo) Create(_ context.Context, a *model.AdminUser) error {
	m.nextID++
	a.ID = m.nextID
	m.items[a.ID] = a
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id int64) (*model.AdminUser, error) {
	if a, ok := m.items[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	for _, a := range m.items {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

// ── Mock SettingRepository ──

type mockSettingRepo struct {
	items  map[string]*model.AppSetting
	nextID int64
}

func (m *mockSettingRepo) List(_ context.Context) ([]model.AppSetting, error) {
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]model.AppSetting, 0, len(keys))
	for _, k := range keys {
		out = append(out, *m.items[k])
	}
	return out, nil
}

func (m *mockSettingRepo) GetByKey(_ context.Context, key string) (*model.AppSetting, error) {
	if s, ok := m.items[key]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSettingRepo) Create(_ context.Context, s *model.AppSetting) error {
	m.nextID++
	s.ID = m.nextID
	cp := *s
	m.items[s.Key] = &cp
	return nil
}

func (m *mockSettingRepo) Update(_ context.Context, s *model.AppSetting) error {
	for _, existing := range m.items {
		if existing.ID == s.ID {
			existing.Value = s.Value
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	items  map[int64]*model.Student
	nextID int64
	err    error // 非空时所有查询返回该错误
}

func (m *mockStudentRepo) add(s model.Student) *model.Student {
	if s.ID == 0 {
		m.nextID++
		s.ID = m.nextID
	} else if s.ID > m.nextID {
		m.nextID = s.ID
	}
	m.items[s.ID] = &s
	return &s
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Student, 0, len(m.items))
	for _, id := range sortedIDs(m.items) {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id int64) (*model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	if s, ok := m.items[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.items {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Create(_ context.Context, s *model.Student) error {
	created := m.add(*s)
	s.ID = created.ID
	return nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *model.Student) error {
	cp := *s
	m.items[s.ID] = &cp
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock TeacherRepository ──

type mockTeacherRepo struct {
	items   map[int64]*model.Teacher
	nextID  int64
	courses *mockCourseRepo
	err     error
}

func (m *mockTeacherRepo) add(t model.Teacher) *model.Teacher {
	if t.ID == 0 {
		m.nextID++
		t.ID = m.nextID
	} else if t.ID > m.nextID {
		m.nextID = t.ID
	}
	m.items[t.ID] = &t
	return &t
}

func (m *mockTeacherRepo) List(_ context.Context) ([]model.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Teacher, 0, len(m.items))
	for _, id := range sortedIDs(m.items) {
		out = append(out, *m.items[id])
	}
	return out, nil
}

func (m *mockTeacherRepo) GetByID(_ context.Context, id int64) (*model.Teacher, error) {
	if t, ok := m.items[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	for _, t := range m.items {
		if t.Email == email {
			cp := *t
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTeacherRepo) Create(_ context.Context, t *model.Teacher) error {
	created := m.add(*t)
	t.ID = created.ID
	return nil
}

func (m *mockTeacherRepo) Update(_ context.Context, t *model.Teacher) error {
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

// Delete 与真实实现一致：解除课程关联后删除
func (m *mockTeacherRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for _, c := range m.courses.items {
		if c.TeacherID != nil && *c.TeacherID == id {
			c.TeacherID = nil
		}
	}
	delete(m.items, id)
	return nil
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	items    map[int64]*model.Course
	nextID   int64
	teachers *mockTeacherRepo
	err      error
}

func (m *mockCourseRepo) add(c model.Course) *model.Course {
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	} else if c.ID > m.nextID {
		m.nextID = c.ID
	}
	c.Teacher = nil
	m.items[c.ID] = &c
	return &c
}

// resolve 模拟 Preload("Teacher")
func (m *mockCourseRepo) resolve(c model.Course) model.Course {
	c.Teacher = nil
	if c.TeacherID != nil {
		if t, ok := m.teachers.items[*c.TeacherID]; ok {
			cp := *t
			c.Teacher = &cp
		}
	}
	return c
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Course, 0, len(m.items))
	for _, id := range sortedIDs(m.items) {
		out = append(out, m.resolve(*m.items[id]))
	}
	return out, nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id int64) (*model.Course, error) {
	if c, ok := m.items[id]; ok {
		r := m.resolve(*c)
		return &r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.items {
		if c.Code != nil && *c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	created := m.add(*c)
	c.ID = created.ID
	return nil
}

func (m *mockCourseRepo) Update(_ context.Context, c *model.Course) error {
	m.add(*c)
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	items    map[int64]*model.Enrollment
	nextID   int64
	students *mockStudentRepo
	courses  *mockCourseRepo
	err      error
	writes   int
}

func (m *mockEnrollmentRepo) add(e model.Enrollment) *model.Enrollment {
	if e.ID == 0 {
		m.nextID++
		e.ID = m.nextID
	} else if e.ID > m.nextID {
		m.nextID = e.ID
	}
	e.Student, e.Course = nil, nil
	m.items[e.ID] = &e
	return &e
}

// resolve 模拟 Preload("Student") / Preload("Course")
func (m *mockEnrollmentRepo) resolve(e model.Enrollment) model.Enrollment {
	if s, ok := m.students.items[e.StudentID]; ok {
		cp := *s
		e.Student = &cp
	}
	if c, ok := m.courses.items[e.CourseID]; ok {
		cp := *c
		e.Course = &cp
	}
	return e
}

func (m *mockEnrollmentRepo) List(_ context.Context) ([]model.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.Enrollment, 0, len(m.items))
	for _, id := range sortedIDs(m.items) {
		out = append(out, m.resolve(*m.items[id]))
	}
	return out, nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id int64) (*model.Enrollment, error) {
	if e, ok := m.items[id]; ok {
		r := m.resolve(*e)
		return &r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByStudentAndCourse(_ context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	for _, e := range m.items {
		if e.StudentID == studentID && e.CourseID == courseID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	m.writes++
	created := m.add(*e)
	e.ID = created.ID
	return nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, e *model.Enrollment) error {
	m.writes++
	m.add(*e)
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}
