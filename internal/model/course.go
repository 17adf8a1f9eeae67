package model

// 课程状态标签
const (
	CourseStatusOpen = "Ouvert"
	CourseStatusFull = "Complet"
)

// Course 课程表：对应 courses
// 教师删除时 teacher_id 置空（ON DELETE SET NULL），课程本身保留
type Course struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        *string `gorm:"type:varchar(20);unique"  json:"code"`
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Description *string `gorm:"type:varchar(500)"        json:"description"`
	Department  *string `gorm:"type:varchar(120)"        json:"department"`
	Level       *string `gorm:"type:varchar(50)"         json:"level"`
	Hours       *string `gorm:"type:varchar(30)"         json:"hours"`
	Schedule    *string `gorm:"type:varchar(120)"        json:"schedule"`
	Status      *string `gorm:"type:varchar(30)"         json:"status"`
	TeacherID   *int64  `gorm:"index"                    json:"teacherId"`

	// 关联
	Teacher *Teacher `gorm:"foreignKey:TeacherID;references:ID;constraint:OnDelete:SET NULL" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// TeacherName 授课教师姓名；未分配时返回 false
func (c *Course) TeacherName() (string, bool) {
	if c.Teacher == nil {
		return "", false
	}
	return c.Teacher.FullName(), true
}
