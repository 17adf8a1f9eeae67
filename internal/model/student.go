package model

import "time"

// 学生状态标签
const (
	StudentStatusActive    = "Actif"
	StudentStatusPending   = "En attente"
	StudentStatusSuspended = "Suspendu"
)

// Student 学生表：对应 students
type Student struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"          json:"id"`
	Code      *string    `gorm:"type:varchar(20)"                  json:"code"`
	FirstName string     `gorm:"type:varchar(100);not null"        json:"firstName"`
	LastName  string     `gorm:"type:varchar(100);not null"        json:"lastName"`
	Email     string     `gorm:"type:varchar(200);not null;unique" json:"email"`
	Program   *string    `gorm:"type:varchar(150)"                 json:"program"`
	Level     *string    `gorm:"type:varchar(50)"                  json:"level"`
	Status    *string    `gorm:"type:varchar(30)"                  json:"status"`
	Average   *float64   `gorm:"type:numeric(4,2)"                 json:"average"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"              json:"updatedAt"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// FullName 姓名（名 + 姓）
func (s *Student) FullName() string { return fullName(s.FirstName, s.LastName) }

// DisplayCode 展示编号，缺省为 STD-0001 形式
func (s *Student) DisplayCode() string { return displayCode("STD", s.ID, s.Code) }
