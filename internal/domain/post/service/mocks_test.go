package service

import (
	"context"
	"mime/multipart"

	"catalog_api/internal/domain/post/model"

	"github.com/stretchr/testify/mock"
)

// MockPostRepository is a mock of PostRepository
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) CreatePost(ctx context.Context, post *model.Post, tags []model.Tag) error {
	args := m.Called(ctx, post, tags)
	return args.Error(0)
}

func (m *MockPostRepository) FindPostByID(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) FindPostWithComments(ctx context.Context, id uint) (*model.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) ListPosts(ctx context.Context, offset, limit int) ([]model.Post, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) HotPosts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) SearchPosts(ctx context.Context, query string) ([]model.Post, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePost(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) ListTags(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockPostRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockPostRepository) FindCommentByID(ctx context.Context, id uint) (*model.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockPostRepository) DeleteComment(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPostRepository) UpsertVote(ctx context.Context, vote *model.CommentVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockPostRepository) HasInterest(ctx context.Context, postID, userID uint) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) CreateInterest(ctx context.Context, interest *model.PostInterest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}

func (m *MockPostRepository) DeleteInterest(ctx context.Context, postID, userID uint) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockPostRepository) CountInterest(ctx context.Context, postID uint) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

// MockScoreReader is a mock of ScoreReader
type MockScoreReader struct {
	mock.Mock
}

func (m *MockScoreReader) Scores(ctx context.Context, ids []uint) (map[uint]int64, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]int64), args.Error(1)
}

func (m *MockScoreReader) Score(ctx context.Context, id uint) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockUploader is a mock of uploader.Uploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockUploader) Delete(ref string) error {
	args := m.Called(ref)
	return args.Error(0)
}
