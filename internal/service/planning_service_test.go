package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"school-admin/backend/config"
	"school-admin/backend/internal/model"
)

func TestParseWeeklySlot(t *testing.T) {
	tests := []struct {
		in    string
		ok    bool
		day   time.Weekday
		start time.Duration
		end   time.Duration
	}{
		{"Lundi 08:30-10:30", true, time.Monday, 8*time.Hour + 30*time.Minute, 10*time.Hour + 30*time.Minute},
		{"mercredi 14:00 – 16:00", true, time.Wednesday, 14 * time.Hour, 16 * time.Hour},
		{"Ven 8h30-10h", true, time.Friday, 8*time.Hour + 30*time.Minute, 10 * time.Hour},
		{"Lundi 10:00-09:00", false, 0, 0, 0},
		{"À définir", false, 0, 0, 0},
		{"Lundi", false, 0, 0, 0},
		{"", false, 0, 0, 0},
	}
	for _, tt := range tests {
		slot, ok := ParseWeeklySlot(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseWeeklySlot(%q) ok 期望=%v，实际=%v", tt.in, tt.ok, ok)
			continue
		}
		if ok && (slot.Day != tt.day || slot.Start != tt.start || slot.End != tt.end) {
			t.Errorf("ParseWeeklySlot(%q) 结果不正确: %+v", tt.in, slot)
		}
	}
}

func TestPlanningService_ExportCalendar(t *testing.T) {
	repo, mocks := newMockRepository()
	teacher := mocks.teacher.add(model.Teacher{FirstName: "Nadia", LastName: "Berrada", Email: "n@school.com"})
	mocks.course.add(model.Course{Title: "Java", Code: strp("INF-201"), Status: strp(model.CourseStatusOpen), Schedule: strp("Lundi 08:30-10:30"), TeacherID: &teacher.ID})
	mocks.course.add(model.Course{Title: "Réseaux", Status: strp(model.CourseStatusOpen), Schedule: strp("À définir")})
	mocks.course.add(model.Course{Title: "Complet", Status: strp(model.CourseStatusFull), Schedule: strp("Mardi 10:00-12:00")})

	cfg := &config.ServerConfig{DisplayTZ: "UTC", PlanningWeek: "2026-09-09"}
	svc := NewPlanningService(cfg, repo, zap.NewNop()).(*planningService)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) }

	buf, filename, err := svc.ExportCalendar(context.Background())
	if err != nil {
		t.Fatalf("导出应成功: %v", err)
	}
	if filename != "planning.ics" {
		t.Errorf("文件名不正确: %s", filename)
	}

	out := buf.String()
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 1 {
		t.Errorf("只应导出 1 个可解析的开放课程，实际=%d", n)
	}
	for _, want := range []string{
		"RRULE:FREQ=WEEKLY;BYDAY=MO",
		"DTSTART:20260907T083000Z",
		"DTEND:20260907T103000Z",
		"SUMMARY:Java",
		"course-1@school-admin",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("日历缺少 %q", want)
		}
	}
}

func TestPlanningService_BadTimezone(t *testing.T) {
	repo, _ := newMockRepository()
	svc := NewPlanningService(&config.ServerConfig{DisplayTZ: "Mars/Olympus"}, repo, zap.NewNop())

	if _, _, err := svc.ExportCalendar(context.Background()); err != ErrPlanningTimezone {
		t.Errorf("期望 ErrPlanningTimezone，实际: %v", err)
	}
}
