package repository

import (
	"context"
	"strings"

	"catalog_api/internal/domain/post/model"
	baseModel "catalog_api/pkg/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const interestCountSelect = "posts.*, (SELECT COUNT(*) FROM post_interests WHERE post_interests.post_id = posts.id) AS interest_count"

type PostRepository interface {
	CreatePost(ctx context.Context, post *model.Post, tags []model.Tag) error
	FindPostByID(ctx context.Context, id uint) (*model.Post, error)
	FindPostWithComments(ctx context.Context, id uint) (*model.Post, error)
	PostExists(ctx context.Context, id uint) (bool, error)
	ListPosts(ctx context.Context, offset, limit int) ([]model.Post, error)
	HotPosts(ctx context.Context) ([]model.Post, error)
	SearchPosts(ctx context.Context, query string) ([]model.Post, error)
	DeletePost(ctx context.Context, id uint) error

	ListTags(ctx context.Context) ([]model.Tag, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	FindCommentByID(ctx context.Context, id uint) (*model.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	UpsertVote(ctx context.Context, vote *model.CommentVote) error

	HasInterest(ctx context.Context, postID, userID uint) (bool, error)
	CreateInterest(ctx context.Context, interest *model.PostInterest) error
	DeleteInterest(ctx context.Context, postID, userID uint) error
	CountInterest(ctx context.Context, postID uint) (int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postQuery 带创建者、标签与关注数的基础查询
func (r *postRepository) postQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select(interestCountSelect).
		Preload("Owner").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("tags.label ASC")
		})
}

// --- Post ---

// CreatePost 在同一事务中解析标签（按 label 查找或创建）并写入帖子
func (r *postRepository) CreatePost(ctx context.Context, post *model.Post, tags []model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolved := make([]model.Tag, 0, len(tags))
		for _, t := range tags {
			tag, err := resolveTag(tx, t)
			if err != nil {
				return err
			}
			resolved = append(resolved, *tag)
		}
		post.Tags = resolved
		return tx.Omit("Owner").Create(post).Error
	})
}

// resolveTag 插入标签，label 已存在时保留原记录；并发创建同名标签不会触发唯一约束错误
func resolveTag(tx *gorm.DB, t model.Tag) (*model.Tag, error) {
	candidate := model.Tag{Label: t.Label, WikidataURL: t.WikidataURL, Description: t.Description}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "label"}},
		DoNothing: true,
	}).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	var tag model.Tag
	if err := tx.Where("label = ?", t.Label).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *postRepository) FindPostByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.postQuery(ctx).Where("posts.id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// FindPostWithComments 帖子详情，评论按时间正序
func (r *postRepository) FindPostWithComments(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.postQuery(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.id ASC")
		}).
		Preload("Comments.User").
		Where("posts.id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ListPosts 最新的在前；limit <= 0 时返回全部
func (r *postRepository) ListPosts(ctx context.Context, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	query := r.postQuery(ctx).Order("posts.id DESC")
	if limit > 0 {
		query = query.Offset(offset).Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// HotPosts 按关注数降序，关注数相同按 id 升序
func (r *postRepository) HotPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	if err := r.postQuery(ctx).Order("interest_count DESC").Order("posts.id ASC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchPosts 标题或描述包含关键字（不区分大小写）
func (r *postRepository) SearchPosts(ctx context.Context, query string) ([]model.Post, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var posts []model.Post
	err := r.postQuery(ctx).
		Where("LOWER(posts.title) LIKE ? ESCAPE '\\' OR LOWER(COALESCE(posts.description, '')) LIKE ? ESCAPE '\\'", pattern, pattern).
		Order("posts.id ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost 级联删除投票、评论、关注与标签关联
func (r *postRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&model.Comment{}).Select("id").Where("post_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&model.CommentVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostInterest{}).Error; err != nil {
			return err
		}

		post := &model.Post{BaseModel: baseModel.BaseModel{ID: id}}
		if err := tx.Model(post).Association("Tags").Clear(); err != nil {
			return err
		}

		res := tx.Delete(&model.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// --- Tag ---

func (r *postRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	if err := r.db.WithContext(ctx).Order("label ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// --- Comment ---

func (r *postRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Omit("User").Create(comment).Error
}

func (r *postRepository) FindCommentByID(ctx context.Context, id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment 删除评论及其投票
func (r *postRepository) DeleteComment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentVote{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Comment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// UpsertVote 同一用户重复投票时覆盖方向
func (r *postRepository) UpsertVote(ctx context.Context, vote *model.CommentVote) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "comment_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_upvote", "updated_at"}),
	}).Create(vote).Error
}

// --- Interest ---

func (r *postRepository) HasInterest(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostInterest{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) CreateInterest(ctx context.Context, interest *model.PostInterest) error {
	return r.db.WithContext(ctx).Create(interest).Error
}

func (r *postRepository) DeleteInterest(ctx context.Context, postID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostInterest{}).Error
}

func (r *postRepository) CountInterest(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostInterest{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
