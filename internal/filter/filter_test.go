package filter

import (
	"testing"

	"school-admin/backend/internal/model"
)

func sp(s string) *string { return &s }

func sampleStudents() []model.Student {
	return []model.Student{
		{ID: 1, FirstName: "Amine", LastName: "Idrissi", Email: "amine@school.com", Level: sp("2IIR"), Status: sp("Actif"), Program: sp("Génie Informatique")},
		{ID: 2, FirstName: "Sara", LastName: "Bennani", Email: "sara@school.com", Level: sp("2IIR"), Status: sp("Suspendu")},
		{ID: 3, FirstName: "Yassine", LastName: "Alaoui", Email: "yassine@school.com", Level: sp("3IIR"), Status: sp("Actif")},
		{ID: 4, FirstName: "Nora", LastName: "Amrani", Email: "nora@school.com"},
	}
}

func ids(students []model.Student) []int64 {
	out := make([]int64, 0, len(students))
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ── 学生 ──

func TestApply_EmptyCriteria_ReturnsAll(t *testing.T) {
	all := sampleStudents()
	got := Apply(all, Students, Criteria{})
	if !equalIDs(ids(got), []int64{1, 2, 3, 4}) {
		t.Errorf("空条件应返回全部，实际=%v", ids(got))
	}
	got[0].FirstName = "X"
	if all[0].FirstName != "Amine" {
		t.Error("返回切片不应与输入共享底层数组")
	}
}

func TestApply_LevelAndStatus(t *testing.T) {
	got := Apply(sampleStudents(), Students, Criteria{Exact: map[string]string{KeyLevel: "2IIR", KeyStatus: "Actif"}})
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("2IIR + Actif 期望=[1]，实际=%v", ids(got))
	}
}

func TestApply_AbsentFieldNeverMatchesExact(t *testing.T) {
	got := Apply(sampleStudents(), Students, Criteria{Exact: map[string]string{KeyLevel: "2IIR"}})
	for _, s := range got {
		if s.ID == 4 {
			t.Error("无年级的学生不应匹配年级筛选")
		}
	}
}

func TestApply_WhitespaceLabelMatchesExactly(t *testing.T) {
	students := append(sampleStudents(), model.Student{ID: 5, FirstName: "Omar", LastName: "Fassi", Level: sp(" ")})

	got := Apply(students, Students, Criteria{Exact: map[string]string{KeyLevel: " "}})
	if !equalIDs(ids(got), []int64{5}) {
		t.Errorf("年级为空白字符串时应精确匹配，期望=[5]，实际=%v", ids(got))
	}
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	cases := map[string][]int64{
		"AMINE":       {1},
		"bennani":     {2},
		"std-0003":    {3},
		"génie":       {1},
		"@school.com": {1, 2, 3, 4},
		"inexistant":  {},
	}
	for search, want := range cases {
		got := Apply(sampleStudents(), Students, Criteria{Search: search})
		if !equalIDs(ids(got), want) {
			t.Errorf("搜索 %q 期望=%v，实际=%v", search, want, ids(got))
		}
	}
}

func TestApply_ComposesAsAnd(t *testing.T) {
	search := Criteria{Search: "a"}
	status := Criteria{Exact: map[string]string{KeyStatus: "Actif"}}
	both := Criteria{Search: "a", Exact: map[string]string{KeyStatus: "Actif"}}

	sequential := Apply(Apply(sampleStudents(), Students, search), Students, status)
	combined := Apply(sampleStudents(), Students, both)
	if !equalIDs(ids(sequential), ids(combined)) {
		t.Errorf("依次筛选应等价于同时筛选: %v vs %v", ids(sequential), ids(combined))
	}
}

func TestApply_UnknownExactKey(t *testing.T) {
	got := Apply(sampleStudents(), Students, Criteria{Exact: map[string]string{"color": "bleu"}})
	if len(got) != 0 {
		t.Errorf("未声明的筛选键不应匹配任何记录，实际=%v", ids(got))
	}
	got = Apply(sampleStudents(), Students, Criteria{Exact: map[string]string{"color": ""}})
	if len(got) != 4 {
		t.Errorf("空值的未知键不应限制结果，实际=%v", ids(got))
	}
}

// ── 其他实体 ──

func TestCourses_SearchByTeacherName(t *testing.T) {
	teacher := &model.Teacher{ID: 1, FirstName: "Karim", LastName: "Tazi"}
	courses := []model.Course{
		{ID: 1, Title: "Java", Teacher: teacher, Status: sp("Ouvert")},
		{ID: 2, Title: "Python", Status: sp("Complet")},
	}
	got := Apply(courses, Courses, Criteria{Search: "tazi"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("按教师姓名搜索期望课程 1，实际=%+v", got)
	}
	if !Courses.Match(courses[1], Criteria{Exact: map[string]string{KeyStatus: "Complet"}}) {
		t.Error("课程 2 应匹配 Complet")
	}
}

func TestGrades_UnresolvedRelations(t *testing.T) {
	grades := []model.Enrollment{
		{ID: 1, Student: &model.Student{FirstName: "Amine", LastName: "Idrissi"}, Course: &model.Course{Title: "Java", Code: sp("INF-201")}, SessionType: sp("Examen final")},
		{ID: 2},
	}
	got := Apply(grades, Grades, Criteria{Search: "inf-201"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("按课程代码搜索期望成绩 1，实际=%d 条", len(got))
	}
	if Grades.Match(grades[1], Criteria{Search: "java"}) {
		t.Error("无关联的成绩不应匹配搜索")
	}
	if !Grades.Match(grades[0], Criteria{Exact: map[string]string{KeySessionType: "Examen final"}}) {
		t.Error("成绩 1 应匹配考试类型")
	}
}

func TestTeachers_SubjectFilter(t *testing.T) {
	teachers := []model.Teacher{
		{ID: 1, FirstName: "A", LastName: "B", Subject: sp("Mathématiques"), Status: sp("Actif")},
		{ID: 2, FirstName: "C", LastName: "D", Subject: sp("Physique"), Status: sp("Congé")},
	}
	got := Apply(teachers, Teachers, Criteria{Search: "MATHÉ"})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("大小写折叠搜索期望教师 1，实际=%d 条", len(got))
	}
	if !(Criteria{Exact: map[string]string{KeyStatus: ""}}).IsEmpty() {
		t.Error("全空条件应视为无条件")
	}
}
