package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"catalog_api/internal/domain/post/model"
	"catalog_api/internal/domain/post/repository"
	userModel "catalog_api/internal/domain/user/model"
	"catalog_api/internal/pkg/uploader"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/database"
	"catalog_api/pkg/logger"
	"catalog_api/pkg/metrics"
	"catalog_api/pkg/utils"

	"go.uber.org/zap"
)

// CreatePostInput 创建帖子参数
type CreatePostInput struct {
	Title       string
	Description *string
	Material    *string
	Length      *float64
	Width       *float64
	Height      *float64
	Color       *string
	Shape       *string
	Weight      *float64
	Location    *string
	Smell       *string
	Taste       *string
	Origin      *string
	Tags        []TagInput
	Image       *multipart.FileHeader
}

// InterestResult 关注切换结果
type InterestResult struct {
	InterestCount int64
	Interested    bool
}

type PostService interface {
	CreatePost(ctx context.Context, actor *userModel.User, input CreatePostInput) (*model.Post, error)
	ListPosts(ctx context.Context, page, limit int) ([]model.Post, error)
	HotPosts(ctx context.Context) ([]model.Post, error)
	SearchPosts(ctx context.Context, query string) ([]model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	DeletePost(ctx context.Context, actor *userModel.User, id uint) error
	ToggleInterest(ctx context.Context, actor *userModel.User, postID uint) (*InterestResult, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
}

type postService struct {
	repo     repository.PostRepository
	scores   repository.ScoreReader
	uploader uploader.Uploader
	metrics  *metrics.MetricsCollector
}

func NewPostService(repo repository.PostRepository, scores repository.ScoreReader, up uploader.Uploader, m *metrics.MetricsCollector) PostService {
	return &postService{repo: repo, scores: scores, uploader: up, metrics: m}
}

func (s *postService) CreatePost(ctx context.Context, actor *userModel.User, input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperr.Validation("Title is required")
	}

	post := &model.Post{
		Title:       title,
		Description: optionalString(input.Description),
		Material:    optionalString(input.Material),
		Length:      input.Length,
		Width:       input.Width,
		Height:      input.Height,
		Color:       optionalString(input.Color),
		Shape:       optionalString(input.Shape),
		Weight:      input.Weight,
		Location:    optionalString(input.Location),
		Smell:       optionalString(input.Smell),
		Taste:       optionalString(input.Taste),
		Origin:      optionalString(input.Origin),
		OwnerID:     actor.ID,
	}

	if input.Image != nil {
		if s.uploader == nil {
			return nil, apperr.Validation("Image upload is not configured")
		}
		ref, err := s.uploader.UploadFile(input.Image)
		if err != nil {
			if errors.Is(err, uploader.ErrInvalidImage) {
				return nil, apperr.Validation(err.Error())
			}
			return nil, err
		}
		post.ImageURL = &ref
	}

	if err := s.repo.CreatePost(ctx, post, normalizeTags(input.Tags)); err != nil {
		s.discardImage(post.ImageURL)
		return nil, err
	}

	s.metrics.PostCreated()
	logger.Log.Info("post created",
		zap.Uint("post_id", post.ID),
		zap.Uint("owner_id", actor.ID),
		zap.Int("tags", len(post.Tags)),
	)

	// 重新读取以带上创建者与关注数
	return s.repo.FindPostByID(ctx, post.ID)
}

// ListPosts page 与 limit 均未指定时返回全部
func (s *postService) ListPosts(ctx context.Context, page, limit int) ([]model.Post, error) {
	if page <= 0 && limit <= 0 {
		return s.repo.ListPosts(ctx, 0, 0)
	}
	p := utils.Pagination{Page: page, Limit: limit}
	offset, size := p.GetPageOffset()
	return s.repo.ListPosts(ctx, offset, size)
}

func (s *postService) HotPosts(ctx context.Context) ([]model.Post, error) {
	return s.repo.HotPosts(ctx)
}

// SearchPosts 空白关键字直接返回空列表
func (s *postService) SearchPosts(ctx context.Context, query string) ([]model.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Post{}, nil
	}
	return s.repo.SearchPosts(ctx, query)
}

// GetPost 帖子详情，评论附带得分
func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.repo.FindPostWithComments(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperr.NotFound("Post not found")
		}
		return nil, err
	}

	ids := make([]uint, 0, len(post.Comments))
	for _, c := range post.Comments {
		ids = append(ids, c.ID)
	}
	scores, err := s.scores.Scores(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range post.Comments {
		post.Comments[i].Score = scores[post.Comments[i].ID]
	}
	return post, nil
}

// DeletePost 仅作者可删除
func (s *postService) DeletePost(ctx context.Context, actor *userModel.User, id uint) error {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return apperr.NotFound("Post not found")
		}
		return err
	}
	if post.OwnerID != actor.ID {
		return apperr.Forbidden("Not authorized to delete this post")
	}

	if err := s.repo.DeletePost(ctx, id); err != nil {
		if database.IsNotFound(err) {
			return apperr.NotFound("Post not found")
		}
		return err
	}
	s.discardImage(post.ImageURL)

	s.metrics.PostDeleted()
	logger.Log.Info("post deleted", zap.Uint("post_id", id), zap.Uint("owner_id", actor.ID))
	return nil
}

// ToggleInterest 已关注则取消，否则关注
func (s *postService) ToggleInterest(ctx context.Context, actor *userModel.User, postID uint) (*InterestResult, error) {
	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post not found")
	}

	interested, err := s.repo.HasInterest(ctx, postID, actor.ID)
	if err != nil {
		return nil, err
	}

	if interested {
		if err := s.repo.DeleteInterest(ctx, postID, actor.ID); err != nil {
			return nil, err
		}
		interested = false
	} else {
		err := s.repo.CreateInterest(ctx, &model.PostInterest{PostID: postID, UserID: actor.ID})
		// 并发请求已插入时视为已关注
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, err
		}
		interested = true
	}

	count, err := s.repo.CountInterest(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.metrics.InterestToggled(interested)
	return &InterestResult{InterestCount: count, Interested: interested}, nil
}

func (s *postService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.repo.ListTags(ctx)
}

func (s *postService) discardImage(ref *string) {
	if ref == nil || s.uploader == nil {
		return
	}
	if err := s.uploader.Delete(*ref); err != nil {
		logger.Log.Warn("failed to delete image", zap.String("ref", *ref), zap.Error(err))
	}
}

// optionalString 去除空白，空字符串视为未填写
func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
