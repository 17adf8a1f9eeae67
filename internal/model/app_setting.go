package model

// AppSetting 系统设置表：对应 app_settings（键值对，key 唯一）
type AppSetting struct {
	ID    int64   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Key   string  `gorm:"type:varchar(100);not null;unique" json:"key"`
	Value *string `gorm:"type:varchar(1000)"                json:"value"`
}

// TableName 指定表名
func (AppSetting) TableName() string { return "app_settings" }
