package model

import "catalog_api/pkg/model"

// User 用户模型
type User struct {
	model.BaseModel
	Username       string `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	HashedPassword string `gorm:"not null" json:"-"` // 密码哈希不返回给前端
}
