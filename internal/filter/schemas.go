package filter

import "school-admin/backend/internal/model"

// 精确筛选键（与查询参数同名）
const (
	KeyLevel       = "level"
	KeyStatus      = "status"
	KeySubject     = "subject"
	KeySessionType = "session_type"
)

// Students 学生：姓名、编号、专业、邮箱；按年级、状态筛选
var Students = Schema[model.Student]{
	Searchable: []Accessor[model.Student]{
		func(s model.Student) (string, bool) { return s.FullName(), true },
		func(s model.Student) (string, bool) { return s.DisplayCode(), true },
		func(s model.Student) (string, bool) { return model.Label(s.Program) },
		func(s model.Student) (string, bool) { return present(s.Email) },
	},
	Exact: map[string]Accessor[model.Student]{
		KeyLevel:  func(s model.Student) (string, bool) { return model.Label(s.Level) },
		KeyStatus: func(s model.Student) (string, bool) { return model.Label(s.Status) },
	},
}

// Teachers 教师：姓名、编号、学科、邮箱；按学科、状态筛选
var Teachers = Schema[model.Teacher]{
	Searchable: []Accessor[model.Teacher]{
		func(t model.Teacher) (string, bool) { return t.FullName(), true },
		func(t model.Teacher) (string, bool) { return t.DisplayCode(), true },
		func(t model.Teacher) (string, bool) { return model.Label(t.Subject) },
		func(t model.Teacher) (string, bool) { return present(t.Email) },
	},
	Exact: map[string]Accessor[model.Teacher]{
		KeySubject: func(t model.Teacher) (string, bool) { return model.Label(t.Subject) },
		KeyStatus:  func(t model.Teacher) (string, bool) { return model.Label(t.Status) },
	},
}

// Courses 课程：标题、课程代码、授课教师姓名；按状态、年级筛选
var Courses = Schema[model.Course]{
	Searchable: []Accessor[model.Course]{
		func(c model.Course) (string, bool) { return present(c.Title) },
		func(c model.Course) (string, bool) { return model.Label(c.Code) },
		func(c model.Course) (string, bool) { return c.TeacherName() },
	},
	Exact: map[string]Accessor[model.Course]{
		KeyStatus: func(c model.Course) (string, bool) { return model.Label(c.Status) },
		KeyLevel:  func(c model.Course) (string, bool) { return model.Label(c.Level) },
	},
}

// Grades 成绩：学生姓名、课程标题、课程代码；按状态、考试类型筛选
var Grades = Schema[model.Enrollment]{
	Searchable: []Accessor[model.Enrollment]{
		func(e model.Enrollment) (string, bool) {
			if e.Student == nil {
				return "", false
			}
			return e.Student.FullName(), true
		},
		func(e model.Enrollment) (string, bool) {
			if e.Course == nil {
				return "", false
			}
			return present(e.Course.Title)
		},
		func(e model.Enrollment) (string, bool) {
			if e.Course == nil {
				return "", false
			}
			return model.Label(e.Course.Code)
		},
	},
	Exact: map[string]Accessor[model.Enrollment]{
		KeyStatus:      func(e model.Enrollment) (string, bool) { return model.Label(e.Status) },
		KeySessionType: func(e model.Enrollment) (string, bool) { return model.Label(e.SessionType) },
	},
}

func present(s string) (string, bool) { return s, s != "" }
