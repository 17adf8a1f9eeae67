package stats

import "school-admin/backend/internal/model"

// UnassignedTeacher 课程未分配教师时的展示文本
const UnassignedTeacher = "Non assigné"

// Snapshot 一次统计所用的完整数据快照
type Snapshot struct {
	Students    []model.Student
	Teachers    []model.Teacher
	Courses     []model.Course
	Enrollments []model.Enrollment
}

// Population 人数类指标
type Population struct {
	Students       int `json:"students"`
	ActiveStudents int `json:"activeStudents"`
	Teachers       int `json:"teachers"`
	Courses        int `json:"courses"`
	OpenCourses    int `json:"openCourses"`
}

// Performance 成绩类指标
type Performance struct {
	Average        float64   `json:"average"`
	AveragePercent float64   `json:"averagePercent"`
	SuccessRate    int       `json:"successRate"`
	BestClass      Selection `json:"bestClass"`
	TopCourse      Selection `json:"topCourse"`
}

// UpcomingClass 课表预览项
type UpcomingClass struct {
	CourseID int64  `json:"courseId"`
	Course   string `json:"course"`
	Teacher  string `json:"teacher"`
	Time     string `json:"time"`
	Level    string `json:"level,omitempty"`
	Code     string `json:"code,omitempty"`
}

// DashboardStats 仪表盘全部派生数据
type DashboardStats struct {
	Population        Population      `json:"population"`
	Performance       Performance     `json:"performance"`
	GradeDistribution []BandCount     `json:"gradeDistribution"`
	StudentsByLevel   []LabelCount    `json:"studentsByLevel"`
	Planning          []UpcomingClass `json:"planning"`
	PlanningTotal     int             `json:"planningTotal"`
}

// Dashboard 由快照一次性计算仪表盘数据；每次调用都完整重算
// planningLimit <= 0 时返回全部课表项
func Dashboard(snap Snapshot, planningLimit int) DashboardStats {
	avg := InstitutionAverage(snap.Enrollments)
	planning := UpcomingClasses(snap.Courses)
	total := len(planning)
	if planningLimit > 0 && len(planning) > planningLimit {
		planning = planning[:planningLimit]
	}

	return DashboardStats{
		Population: Population{
			Students:       len(snap.Students),
			ActiveStudents: CountByLabel(snap.Students, studentStatus, model.StudentStatusActive),
			Teachers:       len(snap.Teachers),
			Courses:        len(snap.Courses),
			OpenCourses:    CountByLabel(snap.Courses, courseStatus, model.CourseStatusOpen),
		},
		Performance: Performance{
			Average:        avg,
			AveragePercent: AveragePercent(avg),
			SuccessRate:    SuccessRate(snap.Enrollments),
			BestClass:      BestLevel(snap.Students, snap.Enrollments),
			TopCourse:      TopCourse(snap.Courses, snap.Enrollments),
		},
		GradeDistribution: GradeDistribution(snap.Enrollments).Bands(),
		StudentsByLevel:   LevelDistribution(snap.Students),
		Planning:          planning,
		PlanningTotal:     total,
	}
}

// UpcomingClasses 开放且有课表时间的课程，保持输入顺序
func UpcomingClasses(courses []model.Course) []UpcomingClass {
	out := make([]UpcomingClass, 0)
	for i := range courses {
		c := &courses[i]
		schedule, ok := model.Label(c.Schedule)
		if !ok || c.Status == nil || *c.Status != model.CourseStatusOpen {
			continue
		}
		teacher, ok := c.TeacherName()
		if !ok {
			teacher = UnassignedTeacher
		}
		item := UpcomingClass{
			CourseID: c.ID,
			Course:   c.Title,
			Teacher:  teacher,
			Time:     schedule,
		}
		item.Level, _ = model.Label(c.Level)
		item.Code, _ = model.Label(c.Code)
		out = append(out, item)
	}
	return out
}

// ── 列表页摘要 ──

// StudentSummary 学生列表页摘要
type StudentSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Pending   int `json:"pending"`
	Suspended int `json:"suspended"`
}

// SummarizeStudents 按状态统计学生
func SummarizeStudents(students []model.Student) StudentSummary {
	return StudentSummary{
		Total:     len(students),
		Active:    CountByLabel(students, studentStatus, model.StudentStatusActive),
		Pending:   CountByLabel(students, studentStatus, model.StudentStatusPending),
		Suspended: CountByLabel(students, studentStatus, model.StudentStatusSuspended),
	}
}

// TeacherSummary 教师列表页摘要
type TeacherSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Available int `json:"available"`
	OnLeave   int `json:"onLeave"`
}

// SummarizeTeachers 按状态统计教师
func SummarizeTeachers(teachers []model.Teacher) TeacherSummary {
	return TeacherSummary{
		Total:     len(teachers),
		Active:    CountByLabel(teachers, teacherStatus, model.TeacherStatusActive),
		Available: CountByLabel(teachers, teacherStatus, model.TeacherStatusAvailable),
		OnLeave:   CountByLabel(teachers, teacherStatus, model.TeacherStatusOnLeave),
	}
}

// CourseSummary 课程列表页摘要
type CourseSummary struct {
	Total int `json:"total"`
	Open  int `json:"open"`
	Full  int `json:"full"`
}

// SummarizeCourses 按状态统计课程
func SummarizeCourses(courses []model.Course) CourseSummary {
	return CourseSummary{
		Total: len(courses),
		Open:  CountByLabel(courses, courseStatus, model.CourseStatusOpen),
		Full:  CountByLabel(courses, courseStatus, model.CourseStatusFull),
	}
}

// GradeSummary 成绩列表页摘要
type GradeSummary struct {
	Total     int     `json:"total"`
	Scored    int     `json:"scored"`
	Average   float64 `json:"average"`
	Pending   int     `json:"pending"`
	Validated int     `json:"validated"`
}

// SummarizeGrades 成绩均值与状态统计；均值只计已评分成绩
func SummarizeGrades(enrollments []model.Enrollment) GradeSummary {
	return GradeSummary{
		Total:     len(enrollments),
		Scored:    GradeDistribution(enrollments).Total(),
		Average:   InstitutionAverage(enrollments),
		Pending:   CountByLabel(enrollments, gradeStatus, model.GradeStatusPending),
		Validated: CountByLabel(enrollments, gradeStatus, model.GradeStatusValidated),
	}
}

func studentStatus(s *model.Student) *string { return s.Status }
func teacherStatus(t *model.Teacher) *string { return t.Status }
func courseStatus(c *model.Course) *string { return c.Status }
func gradeStatus(e *model.Enrollment) *string { return e.Status }
