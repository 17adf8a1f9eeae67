package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
	"school-admin/backend/internal/stats"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportStudents 学生名单
	ExportStudents(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportGrades 成绩明细 + 统计汇总
	ExportGrades(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportStudents：学生名单
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportStudents(ctx context.Context) (*bytes.Buffer, string, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Étudiants"
	if err := initSheet(f, sheet); err != nil {
		return nil, "", s.fail(err)
	}

	header := []string{"Code", "Prénom", "Nom", "Email", "Filière", "Niveau", "Statut", "Moyenne"}
	if err := writeHeader(f, sheet, header); err != nil {
		return nil, "", s.fail(err)
	}

	for i := range students {
		st := &students[i]
		level, _ := model.Label(st.Level)
		program, _ := model.Label(st.Program)
		status, _ := model.Label(st.Status)
		row := []interface{}{st.DisplayCode(), st.FirstName, st.LastName, st.Email, program, level, status, optionalScore(st.Average)}
		if err := f.SetSheetRow(sheet, cell("A", i+2), &row); err != nil {
			return nil, "", s.fail(err)
		}
	}
	setColWidths(f, sheet, len(header), 18)

	return s.write(f, "etudiants.xlsx")
}

// ═══════════════════════════════════════════════════════════
// ExportGrades：成绩明细 + 汇总
// ═══════════════════════════════════════════════════════════
//
// Sheet "Notes"：每条成绩一行
// Sheet "Synthèse"：平均分、通过率、A–E 分布

func (s *exportService) ExportGrades(ctx context.Context) (*bytes.Buffer, string, error) {
	grades, err := s.repo.Enrollment.List(ctx)
	if err != nil {
		s.logger.Error("查询成绩列表失败", zap.Error(err))
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Notes"
	if err := initSheet(f, sheet); err != nil {
		return nil, "", s.fail(err)
	}

	header := []string{"Étudiant", "Cours", "Code cours", "Note", "Mention", "Statut", "Session", "Commentaire"}
	if err := writeHeader(f, sheet, header); err != nil {
		return nil, "", s.fail(err)
	}

	for i := range grades {
		g := &grades[i]
		var student, course, courseCode string
		if g.Student != nil {
			student = g.Student.FullName()
		}
		if g.Course != nil {
			course = g.Course.Title
			courseCode, _ = model.Label(g.Course.Code)
		}
		band := ""
		if g.Score != nil {
			band = stats.BandOf(*g.Score).String()
		}
		status, _ := model.Label(g.Status)
		session, _ := model.Label(g.SessionType)
		comment, _ := model.Label(g.Comment)

		row := []interface{}{student, course, courseCode, optionalScore(g.Score), band, status, session, comment}
		if err := f.SetSheetRow(sheet, cell("A", i+2), &row); err != nil {
			return nil, "", s.fail(err)
		}
	}
	setColWidths(f, sheet, len(header), 20)

	if err := writeGradeSummary(f, grades); err != nil {
		return nil, "", s.fail(err)
	}

	return s.write(f, "notes.xlsx")
}

func writeGradeSummary(f *excelize.File, grades []model.Enrollment) error {
	sheet := "Synthèse"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	avg := stats.InstitutionAverage(grades)
	rows := [][]interface{}{
		{"Indicateur", "Valeur"},
		{"Moyenne générale", avg},
		{"Moyenne (%)", stats.AveragePercent(avg)},
		{"Taux de réussite (%)", stats.SuccessRate(grades)},
		{},
		{"Mention", "Nombre"},
	}
	for _, b := range stats.GradeDistribution(grades).Bands() {
		rows = append(rows, []interface{}{b.Label, b.Count})
	}

	for i := range rows {
		if err := f.SetSheetRow(sheet, cell("A", i+1), &rows[i]); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheet, "A", "B", 24)
}

// ── 辅助函数 ──

func (s *exportService) fail(err error) error {
	s.logger.Error("生成 Excel 失败", zap.Error(err))
	return ErrExportGenerateFail
}

func (s *exportService) write(f *excelize.File, filename string) (*bytes.Buffer, string, error) {
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, "", s.fail(err)
	}
	return buf, filename, nil
}

// initSheet 以 name 替换默认 Sheet1
func initSheet(f *excelize.File, name string) error {
	return f.SetSheetName("Sheet1", name)
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4361EE"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", cell(colName(len(header)-1), 1), style)
}

func setColWidths(f *excelize.File, sheet string, n int, width float64) {
	for i := 0; i < n; i++ {
		col := colName(i)
		_ = f.SetColWidth(sheet, col, col, width)
	}
}

// optionalScore 空值写空单元格
func optionalScore(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
