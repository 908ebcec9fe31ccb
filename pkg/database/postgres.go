package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog_api/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Dialect 数据库方言
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// ResolveDialector 根据 DATABASE_URL 选择驱动：postgres:// 走 pgx，sqlite:// / file: 走 sqlite
func ResolveDialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "sqlite:///"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(url, "sqlite:///"))), nil
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(sqliteDSN(strings.TrimPrefix(url, "sqlite://"))), nil
	case strings.HasPrefix(url, "file:"), url == ":memory:":
		return sqlite.Open(sqliteDSN(url)), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %q", url)
	}
}

// sqliteDSN 打开外键约束并设置忙等待，多个连接写同一文件时避免 database is locked
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open 初始化数据库连接
func Open(url, logLevel string) (*gorm.DB, error) {
	dialector, err := ResolveDialector(url)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger:         logger.NewGormLogger(logLevel),
		TranslateError: true, // 唯一约束冲突统一为 gorm.ErrDuplicatedKey
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 获取底层 SQL DB 对象以配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	configureConnectionPool(sqlDB, dialector.Name())

	return db, nil
}

// configureConnectionPool 配置数据库连接池
func configureConnectionPool(sqlDB *sql.DB, dialect string) {
	if dialect == DialectSQLite {
		// sqlite 单写者
		sqlDB.SetMaxOpenConns(1)
		return
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	logger.Log.Debug("database connection pool configured", zap.String("dialect", dialect))
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return err
	}
	return nil
}
