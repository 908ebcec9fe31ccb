package schema

import (
	postModel "catalog_api/internal/domain/post/model"
	userModel "catalog_api/internal/domain/user/model"

	"gorm.io/gorm"
)

// Models 按依赖顺序返回全部表模型
func Models() []interface{} {
	return []interface{}{
		&userModel.User{},
		&postModel.Tag{},
		&postModel.Post{},
		&postModel.Comment{},
		&postModel.CommentVote{},
		&postModel.PostInterest{},
	}
}

// AutoMigrate 建表，生产环境优先使用 cmd/migrate
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
