package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"school-admin/backend/config"
	"school-admin/backend/internal/repository"
	"school-admin/backend/internal/stats"
)

// ── 课表日历导出 ──────────────────────────────────────────────
//
// 课程的 schedule 字段为自由文本；能解析为 "<Jour> HH:MM-HH:MM" 的开放课程
// 导出为每周重复的 VEVENT，无法解析的课程跳过并记录日志。
// ─────────────────────────────────────────────────────────────

var ErrPlanningTimezone = errors.New("课表时区配置无效")

// frenchWeekdays 法语星期（含三字母缩写）→ time.Weekday
var frenchWeekdays = map[string]time.Weekday{
	"lundi": time.Monday, "lun": time.Monday,
	"mardi": time.Tuesday, "mar": time.Tuesday,
	"mercredi": time.Wednesday, "mer": time.Wednesday,
	"jeudi": time.Thursday, "jeu": time.Thursday,
	"vendredi": time.Friday, "ven": time.Friday,
	"samedi": time.Saturday, "sam": time.Saturday,
	"dimanche": time.Sunday, "dim": time.Sunday,
}

var rruleDays = map[time.Weekday]string{
	time.Monday: "MO", time.Tuesday: "TU", time.Wednesday: "WE", time.Thursday: "TH",
	time.Friday: "FR", time.Saturday: "SA", time.Sunday: "SU",
}

// WeeklySlot 解析后的每周时段
type WeeklySlot struct {
	Day   time.Weekday
	Start time.Duration // 距当日零点
	End   time.Duration
}

// ParseWeeklySlot 解析 "Lundi 08:30-10:30"；大小写不敏感，允许 "–" 与多余空白
func ParseWeeklySlot(schedule string) (WeeklySlot, bool) {
	fields := strings.Fields(strings.ReplaceAll(schedule, "–", "-"))
	if len(fields) == 0 {
		return WeeklySlot{}, false
	}
	day, ok := frenchWeekdays[strings.ToLower(fields[0])]
	if !ok {
		return WeeklySlot{}, false
	}

	span := strings.Join(fields[1:], "")
	parts := strings.Split(span, "-")
	if len(parts) != 2 {
		return WeeklySlot{}, false
	}
	start, ok1 := parseClock(parts[0])
	end, ok2 := parseClock(parts[1])
	if !ok1 || !ok2 || end <= start {
		return WeeklySlot{}, false
	}
	return WeeklySlot{Day: day, Start: start, End: end}, true
}

// parseClock 解析 "08:30" 或 "8h30"
func parseClock(s string) (time.Duration, bool) {
	s = strings.Replace(strings.ToLower(s), "h", ":", 1)
	if strings.HasSuffix(s, ":") {
		s += "00"
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, true
}

// PlanningService 课表日历业务接口
type PlanningService interface {
	ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error)
}

type planningService struct {
	cfg    *config.ServerConfig
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewPlanningService 创建 PlanningService 实例
func NewPlanningService(cfg *config.ServerConfig, repo *repository.Repository, logger *zap.Logger) PlanningService {
	return &planningService{cfg: cfg, repo: repo, logger: logger, now: time.Now}
}

func (s *planningService) ExportCalendar(ctx context.Context) (*bytes.Buffer, string, error) {
	loc, err := time.LoadLocation(s.cfg.DisplayTZ)
	if err != nil {
		s.logger.Error("加载时区失败", zap.String("tz", s.cfg.DisplayTZ), zap.Error(err))
		return nil, "", ErrPlanningTimezone
	}

	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, "", err
	}

	weekStart := s.weekStart(loc)
	stamp := s.now().UTC()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-admin//planning//FR")
	cal.SetXWRCalName("Planning des cours")
	cal.SetXWRTimezone(loc.String())

	skipped := 0
	for _, item := range stats.UpcomingClasses(courses) {
		slot, ok := ParseWeeklySlot(item.Time)
		if !ok {
			skipped++
			s.logger.Debug("课表格式无法解析，跳过", zap.Int64("courseId", item.CourseID), zap.String("schedule", item.Time))
			continue
		}

		day := weekStart.AddDate(0, 0, daysFromMonday(slot.Day))
		start := atClock(day, slot.Start)
		end := atClock(day, slot.End)

		event := cal.AddEvent(fmt.Sprintf("course-%d@school-admin", item.CourseID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(item.Course)
		event.SetDescription(describe(item))
		event.AddProperty(ics.ComponentPropertyRrule, "FREQ=WEEKLY;BYDAY="+rruleDays[slot.Day])
	}
	if skipped > 0 {
		s.logger.Info("部分课程课表未导出", zap.Int("skipped", skipped))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "planning.ics", nil
}

// weekStart 配置的起始周或当前周的周一零点（显示时区）
func (s *planningService) weekStart(loc *time.Location) time.Time {
	ref := s.now().In(loc)
	if s.cfg.PlanningWeek != "" {
		if t, err := time.ParseInLocation("2006-01-02", s.cfg.PlanningWeek, loc); err == nil {
			ref = t
		}
	}
	monday := ref.AddDate(0, 0, -daysFromMonday(ref.Weekday()))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
}

// atClock 当日指定钟点（按墙上时间计算，不受夏令时切换影响）
func atClock(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

func daysFromMonday(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func describe(item stats.UpcomingClass) string {
	parts := []string{"Enseignant : " + item.Teacher}
	if item.Code != "" {
		parts = append(parts, "Code : "+item.Code)
	}
	if item.Level != "" {
		parts = append(parts, "Niveau : "+item.Level)
	}
	return strings.Join(parts, "\n")
}
