package model

import "time"

// 成绩状态标签
const (
	GradeStatusPending   = "En attente"
	GradeStatusValidated = "Validée"
)

// Enrollment 选课/成绩表：对应 enrollments
// (student_id, course_id) 唯一；score 为空表示尚未评分
type Enrollment struct {
	ID          int64      `gorm:"primaryKey;autoIncrement"                            json:"id"`
	Code        *string    `gorm:"type:varchar(20)"                                    json:"code"`
	StudentID   int64      `gorm:"not null;uniqueIndex:uq_enrollments_student_course" json:"studentId"`
	CourseID    int64      `gorm:"not null;uniqueIndex:uq_enrollments_student_course" json:"courseId"`
	Score       *float64   `gorm:"type:numeric(4,2)"                                   json:"score"`
	Status      *string    `gorm:"type:varchar(30)"                                    json:"status"`
	SessionType *string    `gorm:"type:varchar(80)"                                    json:"sessionType"`
	Comment     *string    `gorm:"type:varchar(500)"                                   json:"comment"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false"                                json:"updatedAt"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE" json:"student,omitempty"`
	Course  *Course  `gorm:"foreignKey:CourseID;references:ID;constraint:OnDelete:CASCADE"  json:"course,omitempty"`
}

// TableName 指定表名
func (Enrollment) TableName() string { return "enrollments" }

// Scored 是否已评分
func (e *Enrollment) Scored() bool { return e.Score != nil }
