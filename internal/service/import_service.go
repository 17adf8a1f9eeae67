package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"school-admin/backend/internal/dto"
	"school-admin/backend/internal/model"
	"school-admin/backend/internal/repository"
)

// ────────────────────── 学生批量导入 ──────────────────────

const maxImportRows = 1000

var (
	ErrImportNoData      = errors.New("Excel文件无数据行（第一行为表头）")
	ErrImportTooManyRows = fmt.Errorf("数据行数超过上限 %d 行", maxImportRows)
	ErrImportBadHeader   = errors.New("Excel表头缺少必要列（Prénom/Nom/Email）")
)

// ImportStudentRow Excel 导入解析后的单行数据
type ImportStudentRow struct {
	Row       int
	Code      string
	FirstName string
	LastName  string
	Email     string
	Program   string
	Level     string
	Status    string
}

// ImportService 学生导入业务接口
type ImportService interface {
	ParseImportFile(reader io.Reader) ([]ImportStudentRow, error)
	ImportStudents(ctx context.Context, rows []ImportStudentRow) (*dto.ImportStudentResponse, error)
}

type importService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewImportService 创建 ImportService 实例
func NewImportService(repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{repo: repo, logger: logger, now: time.Now}
}

// 表头别名 → 字段
var importHeaderAliases = map[string]string{
	"code":       "code",
	"matricule":  "code",
	"prénom":     "first_name",
	"prenom":     "first_name",
	"firstname":  "first_name",
	"first_name": "first_name",
	"nom":        "last_name",
	"lastname":   "last_name",
	"last_name":  "last_name",
	"email":      "email",
	"e-mail":     "email",
	"filière":    "program",
	"filiere":    "program",
	"programme":  "program",
	"program":    "program",
	"niveau":     "level",
	"level":      "level",
	"statut":     "status",
	"status":     "status",
}

// ParseImportFile 解析导入 Excel 文件（首个工作表，首行为表头，列序不限）
func (s *importService) ParseImportFile(reader io.Reader) ([]ImportStudentRow, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("无法解析Excel文件: %w", err)
	}
	defer f.Close()

	excelRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	if len(excelRows) < 2 {
		return nil, ErrImportNoData
	}

	colIndex := parseHeaderIndex(excelRows[0])
	if colIndex["first_name"] < 0 || colIndex["last_name"] < 0 || colIndex["email"] < 0 {
		return nil, ErrImportBadHeader
	}

	var rows []ImportStudentRow
	for i := 1; i < len(excelRows); i++ {
		raw := excelRows[i]
		get := func(field string) string {
			if idx := colIndex[field]; idx >= 0 && idx < len(raw) {
				return strings.TrimSpace(raw[idx])
			}
			return ""
		}

		item := ImportStudentRow{
			Row:       i + 1,
			Code:      get("code"),
			FirstName: get("first_name"),
			LastName:  get("last_name"),
			Email:     get("email"),
			Program:   get("program"),
			Level:     get("level"),
			Status:    get("status"),
		}

		// 跳过全空行
		if item == (ImportStudentRow{Row: item.Row}) {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

// parseHeaderIndex 解析 Excel 表头，返回字段 -> 列索引映射（缺失为 -1）
func parseHeaderIndex(header []string) map[string]int {
	idx := map[string]int{
		"code": -1, "first_name": -1, "last_name": -1, "email": -1,
		"program": -1, "level": -1, "status": -1,
	}
	for i, h := range header {
		if field, ok := importHeaderAliases[strings.ToLower(strings.TrimSpace(h))]; ok && idx[field] < 0 {
			idx[field] = i
		}
	}
	return idx
}

// ────────────────────── ImportStudents ──────────────────────

// ImportStudents 两阶段导入：先逐行校验收集失败原因，再在单个事务中写入通过校验的行
func (s *importService) ImportStudents(ctx context.Context, rows []ImportStudentRow) (*dto.ImportStudentResponse, error) {
	resp := &dto.ImportStudentResponse{Total: len(rows), Errors: []dto.ImportStudentError{}}
	reject := func(row ImportStudentRow, reason string) {
		resp.Failed++
		resp.Errors = append(resp.Errors, dto.ImportStudentError{Row: row.Row, Email: row.Email, Reason: reason})
	}

	// 第一阶段：数据预校验（不接触数据库写操作）
	var valid []*model.Student
	seen := make(map[string]bool)
	for _, row := range rows {
		req := &dto.StudentRequest{
			Code:      row.Code,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Program:   row.Program,
			Level:     row.Level,
			Status:    row.Status,
		}
		if err := binding.Validator.ValidateStruct(req); err != nil {
			reject(row, "字段校验失败")
			continue
		}

		key := strings.ToLower(row.Email)
		if seen[key] {
			reject(row, "文件内邮箱重复")
			continue
		}
		seen[key] = true

		if _, err := s.repo.Student.GetByEmail(ctx, row.Email); err == nil {
			reject(row, "邮箱已存在")
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学生邮箱失败", zap.Error(err))
			return nil, err
		}

		if row.Status == "" {
			req.Status = model.StudentStatusActive
		}
		student := &model.Student{}
		applyStudentRequest(student, req, s.now())
		valid = append(valid, student)
	}

	if len(valid) == 0 {
		return resp, nil
	}

	// 第二阶段：在事务中批量创建
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)
	for _, st := range valid {
		if err := txRepo.Student.Create(ctx, st); err != nil {
			// 事务中任一写入失败则全部回滚
			if tx != nil {
				tx.Rollback()
			}
			s.logger.Error("导入学生写入失败，事务回滚", zap.String("email", st.Email), zap.Error(err))
			return nil, fmt.Errorf("写入 %s 失败，已回滚全部导入: %w", st.Email, err)
		}
		resp.Created++
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}
	return resp, nil
}
