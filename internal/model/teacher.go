package model

// 教师状态标签
const (
	TeacherStatusActive    = "Actif"
	TeacherStatusAvailable = "Disponible"
	TeacherStatusOnLeave   = "Congé"
)

// Teacher 教师表：对应 teachers
type Teacher struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Code       *string `gorm:"type:varchar(20)"                  json:"code"`
	FirstName  string  `gorm:"type:varchar(100);not null"        json:"firstName"`
	LastName   string  `gorm:"type:varchar(100);not null"        json:"lastName"`
	Email      string  `gorm:"type:varchar(200);not null;unique" json:"email"`
	Status     *string `gorm:"type:varchar(30)"                  json:"status"`
	Subject    *string `gorm:"type:varchar(150)"                 json:"subject"`
	Seniority  *string `gorm:"type:varchar(50)"                  json:"seniority"`
	Hours      *string `gorm:"type:varchar(30)"                  json:"hours"`
	Phone      *string `gorm:"type:varchar(30)"                  json:"phone"`
	Department *string `gorm:"type:varchar(120)"                 json:"department"`
}

// TableName 指定表名
func (Teacher) TableName() string { return "teachers" }

// FullName 姓名（名 + 姓）
func (t *Teacher) FullName() string { return fullName(t.FirstName, t.LastName) }

// DisplayCode 展示编号，缺省为 TCH-0001 形式
func (t *Teacher) DisplayCode() string { return displayCode("TCH", t.ID, t.Code) }
