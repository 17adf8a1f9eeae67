package stats

import (
	"math"
	"sort"

	"school-admin/backend/internal/model"
)

// NotAvailable 无可选结果时的占位值
const NotAvailable = "N/A"

// ── 成绩分布 ──

// BandCount 单个等级的计数
type BandCount struct {
	Band  string `json:"band"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Distribution 五个等级按 A→E 排列的计数
type Distribution [bandCount]int

// Of 读取某等级计数
func (d Distribution) Of(b Band) int {
	if b < BandA || b > BandE {
		return 0
	}
	return d[b]
}

// Total 已评分成绩总数
func (d Distribution) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Bands 展开为有序列表
func (d Distribution) Bands() []BandCount {
	out := make([]BandCount, 0, bandCount)
	for b := BandA; b <= BandE; b++ {
		out = append(out, BandCount{Band: b.String(), Label: b.Label(), Count: d[b]})
	}
	return out
}

// GradeDistribution 将已评分成绩归入 A–E；未评分的成绩不计入任何等级
func GradeDistribution(enrollments []model.Enrollment) Distribution {
	var d Distribution
	for i := range enrollments {
		if s := enrollments[i].Score; s != nil {
			d[BandOf(*s)]++
		}
	}
	return d
}

// ── 通过率 / 平均分 ──

// SuccessRate 已评分成绩中 >= 10 的百分比（四舍五入取整）；无评分时为 0
// 分母只计已评分成绩，未评分成绩既不算通过也不算未通过，不按成绩总条数计算
func SuccessRate(enrollments []model.Enrollment) int {
	scored, passed := 0, 0
	for i := range enrollments {
		s := enrollments[i].Score
		if s == nil {
			continue
		}
		scored++
		if *s >= PassMark {
			passed++
		}
	}
	if scored == 0 {
		return 0
	}
	return int(math.Round(float64(passed) * 100 / float64(scored)))
}

// InstitutionAverage 已评分成绩的算术平均，保留一位小数；无评分时为 0
func InstitutionAverage(enrollments []model.Enrollment) float64 {
	var m mean
	for i := range enrollments {
		if s := enrollments[i].Score; s != nil {
			m.add(*s)
		}
	}
	return round1(m.value())
}

// AveragePercent 平均分换算为百分比（满分 20），保留一位小数
func AveragePercent(average float64) float64 {
	return round1(average / MaxScore * 100)
}

// ── 最佳年级 / 最佳课程 ──

// Selection 分组均值最高的一项
type Selection struct {
	Label   string  `json:"label"`
	Average float64 `json:"average"`
	Found   bool    `json:"found"`
}

// BestLevel 按学生年级分组求均值，取严格最大者
// 找不到学生、学生无年级、未评分的成绩均被排除；并列时先出现者胜出
func BestLevel(students []model.Student, enrollments []model.Enrollment) Selection {
	levelOf := make(map[int64]string, len(students))
	for i := range students {
		if lv, ok := model.Label(students[i].Level); ok {
			levelOf[students[i].ID] = lv
		}
	}

	var g groups[string]
	for i := range enrollments {
		e := &enrollments[i]
		if e.Score == nil {
			continue
		}
		lv, ok := levelOf[e.StudentID]
		if !ok {
			continue
		}
		g.add(lv, *e.Score)
	}

	key, avg, ok := g.best()
	if !ok {
		return Selection{Label: NotAvailable}
	}
	return Selection{Label: key, Average: round1(avg), Found: true}
}

// TopCourse 按课程分组求均值，取严格最大者并解析为课程标题
// 课程无法解析的成绩被排除；并列时先出现者胜出
func TopCourse(courses []model.Course, enrollments []model.Enrollment) Selection {
	titleOf := make(map[int64]string, len(courses))
	for i := range courses {
		titleOf[courses[i].ID] = courses[i].Title
	}

	var g groups[int64]
	for i := range enrollments {
		e := &enrollments[i]
		if e.Score == nil {
			continue
		}
		if _, ok := titleOf[e.CourseID]; !ok {
			continue
		}
		g.add(e.CourseID, *e.Score)
	}

	id, avg, ok := g.best()
	if !ok {
		return Selection{Label: NotAvailable}
	}
	return Selection{Label: titleOf[id], Average: round1(avg), Found: true}
}

// ── 人数统计 ──

// LabelCount 标签计数
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// CountByLabel 统计某可选字段与 label 完全相等的记录数
func CountByLabel[T any](items []T, field func(*T) *string, label string) int {
	n := 0
	for i := range items {
		if v := field(&items[i]); v != nil && *v == label {
			n++
		}
	}
	return n
}

// LevelDistribution 各年级学生人数，按人数降序；人数相同保持首次出现顺序
func LevelDistribution(students []model.Student) []LabelCount {
	index := make(map[string]int)
	out := make([]LabelCount, 0)
	for i := range students {
		lv, ok := model.Label(students[i].Level)
		if !ok {
			continue
		}
		if j, seen := index[lv]; seen {
			out[j].Count++
			continue
		}
		index[lv] = len(out)
		out = append(out, LabelCount{Label: lv, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// ── 内部辅助 ──

type mean struct {
	sum   float64
	count int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.count++
}

func (m mean) value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// groups 保持插入顺序的分组均值
type groups[K comparable] struct {
	order []K
	acc   map[K]*mean
}

func (g *groups[K]) add(key K, v float64) {
	if g.acc == nil {
		g.acc = make(map[K]*mean)
	}
	m, ok := g.acc[key]
	if !ok {
		m = &mean{}
		g.acc[key] = m
		g.order = append(g.order, key)
	}
	m.add(v)
}

// best 严格大于才替换，因此并列时保留先出现的分组
func (g *groups[K]) best() (K, float64, bool) {
	var bestKey K
	bestAvg, found := 0.0, false
	for _, k := range g.order {
		avg := g.acc[k].value()
		if !found || avg > bestAvg {
			bestKey, bestAvg, found = k, avg, true
		}
	}
	return bestKey, bestAvg, found
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
