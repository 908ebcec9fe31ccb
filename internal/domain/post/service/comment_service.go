package service

import (
	"context"
	"strings"

	"catalog_api/internal/domain/post/model"
	"catalog_api/internal/domain/post/repository"
	userModel "catalog_api/internal/domain/user/model"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/database"
	"catalog_api/pkg/logger"
	"catalog_api/pkg/metrics"

	"go.uber.org/zap"
)

type CommentService interface {
	AddComment(ctx context.Context, actor *userModel.User, postID uint, content string) (*model.Comment, error)
	VoteComment(ctx context.Context, actor *userModel.User, commentID uint, isUpvote bool) (*model.Comment, error)
	DeleteComment(ctx context.Context, actor *userModel.User, commentID uint) error
}

type commentService struct {
	repo    repository.PostRepository
	scores  repository.ScoreReader
	metrics *metrics.MetricsCollector
}

func NewCommentService(repo repository.PostRepository, scores repository.ScoreReader, m *metrics.MetricsCollector) CommentService {
	return &commentService{repo: repo, scores: scores, metrics: m}
}

// AddComment 新评论得分为 0
func (s *commentService) AddComment(ctx context.Context, actor *userModel.User, postID uint, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Validation("Content is required")
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("Post not found")
	}

	comment := &model.Comment{
		PostID:  postID,
		UserID:  actor.ID,
		Content: content,
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	comment.User = *actor

	s.metrics.CommentCreated()
	logger.Log.Info("comment created", zap.Uint("comment_id", comment.ID), zap.Uint("post_id", postID))
	return comment, nil
}

// VoteComment 同一用户的投票以最后一次为准，不提供撤销
func (s *commentService) VoteComment(ctx context.Context, actor *userModel.User, commentID uint, isUpvote bool) (*model.Comment, error) {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperr.NotFound("Comment not found")
		}
		return nil, err
	}

	vote := &model.CommentVote{CommentID: commentID, UserID: actor.ID, IsUpvote: isUpvote}
	if err := s.repo.UpsertVote(ctx, vote); err != nil {
		return nil, err
	}

	score, err := s.scores.Score(ctx, commentID)
	if err != nil {
		return nil, err
	}
	comment.Score = score

	s.metrics.CommentVoted(isUpvote)
	logger.Log.Debug("comment voted",
		zap.Uint("comment_id", commentID),
		zap.Uint("user_id", actor.ID),
		zap.Bool("upvote", isUpvote),
	)
	return comment, nil
}

// DeleteComment 仅评论作者可删除
func (s *commentService) DeleteComment(ctx context.Context, actor *userModel.User, commentID uint) error {
	comment, err := s.repo.FindCommentByID(ctx, commentID)
	if err != nil {
		if database.IsNotFound(err) {
			return apperr.NotFound("Comment not found")
		}
		return err
	}
	if comment.UserID != actor.ID {
		return apperr.Forbidden("Not authorized to delete this comment")
	}

	if err := s.repo.DeleteComment(ctx, commentID); err != nil {
		if database.IsNotFound(err) {
			return apperr.NotFound("Comment not found")
		}
		return err
	}
	logger.Log.Info("comment deleted", zap.Uint("comment_id", commentID))
	return nil
}
