package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// NewSQLX 复用 gorm 的连接池构造 sqlx 句柄，用于只读聚合查询
func NewSQLX(db *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlx.NewDb(sqlDB, sqlxDriverName(db.Dialector.Name())), nil
}

// sqlxDriverName sqlx 依据驱动名决定占位符风格
func sqlxDriverName(dialect string) string {
	if dialect == DialectPostgres {
		return "pgx"
	}
	return "sqlite3"
}
