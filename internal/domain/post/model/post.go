package model

import (
	"time"

	userModel "catalog_api/internal/domain/user/model"
	baseModel "catalog_api/pkg/model"
)

// TagPlaceholderDescription 新建标签未提供描述时使用
const TagPlaceholderDescription = "No description available"

// Post 物品帖子
type Post struct {
	baseModel.BaseModel
	Title       string   `gorm:"not null;index" json:"title"`
	Description *string  `gorm:"type:text" json:"description"`
	Material    *string  `json:"material"`
	Length      *float64 `json:"length"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	Color       *string  `json:"color"`
	Shape       *string  `json:"shape"`
	Weight      *float64 `json:"weight"`
	Location    *string  `json:"location"`
	Smell       *string  `json:"smell"`
	Taste       *string  `json:"taste"`
	Origin      *string  `json:"origin"`
	ImageURL    *string  `json:"image_url"`
	OwnerID     uint     `gorm:"not null;index" json:"owner_id"`

	// 关联
	Owner     userModel.User `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Tags      []Tag          `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
	Comments  []Comment      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Interests []PostInterest `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// 派生字段：查询时由子查询填充
	InterestCount int64 `gorm:"->;-:migration" json:"interest_count"`
}

// Tag 标签，按 label 去重
type Tag struct {
	baseModel.BaseModel
	Label       string `gorm:"not null;uniqueIndex" json:"label"`
	WikidataURL string `json:"wikidata_url"`
	Description string `gorm:"type:text" json:"description"`
}

// Comment 评论模型
type Comment struct {
	baseModel.BaseModel
	PostID  uint           `gorm:"not null;index" json:"post_id"`
	UserID  uint           `gorm:"not null;index" json:"user_id"`
	User    userModel.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Content string         `gorm:"type:text;not null" json:"content"`

	Votes []CommentVote `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// 派生字段：赞成票减反对票
	Score int64 `gorm:"-" json:"score"`
}

// CommentVote 评论投票，每个用户对每条评论至多一票
type CommentVote struct {
	baseModel.BaseModel
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_votes_comment_user" json:"comment_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_votes_comment_user" json:"user_id"`
	IsUpvote  bool      `gorm:"not null" json:"is_upvote"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PostInterest 用户对帖子的关注，每个用户对每个帖子至多一条
type PostInterest struct {
	baseModel.BaseModel
	PostID uint `gorm:"not null;uniqueIndex:idx_post_interests_post_user" json:"post_id"`
	UserID uint `gorm:"not null;uniqueIndex:idx_post_interests_post_user" json:"user_id"`
}
