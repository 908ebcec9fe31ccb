package model

import (
	"time"
)

// BaseModel 基础模型：自增整型主键 + 创建时间，不做软删除（级联删除由事务完成）
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}
