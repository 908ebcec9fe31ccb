package testdb

import (
	"path/filepath"
	"testing"

	"catalog_api/internal/pkg/schema"
	"catalog_api/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open 在临时目录中创建 sqlite 数据库并建表，测试结束时自动关闭
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	url := "sqlite:///" + filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(url, "silent")
	require.NoError(t, err)
	require.NoError(t, schema.AutoMigrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
