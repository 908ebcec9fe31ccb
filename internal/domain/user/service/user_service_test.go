package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"catalog_api/internal/domain/user/model"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/security"
	"catalog_api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockRevoker is a mock of security.TokenRevoker
type MockRevoker struct {
	mock.Mock
}

func (m *MockRevoker) Revoke(ctx context.Context, jti string, until time.Time) error {
	args := m.Called(ctx, jti, until)
	return args.Error(0)
}

func (m *MockRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func newTokens(t *testing.T) *utils.JWTManager {
	t.Helper()
	tokens, err := utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	return tokens
}

func createTestUser(t *testing.T, username, password string) *model.User {
	t.Helper()
	hashed, err := security.HashPassword(password)
	require.NoError(t, err)
	u := &model.User{Username: username, HashedPassword: hashed}
	u.ID = 1
	return u
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("New user registration success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "alice").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(nil)

		user, err := service.Register(ctx, "  alice ", "pw")

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "pw", user.HashedPassword)
		assert.True(t, security.CheckPassword("pw", user.HashedPassword))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "alice").Return(createTestUser(t, "alice", "pw"), nil)

		_, err := service.Register(ctx, "alice", "pw")

		assert.True(t, apperr.Is(err, apperr.KindConflict))
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Unique violation on insert", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "bob").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)

		_, err := service.Register(ctx, "bob", "pw")

		assert.True(t, apperr.Is(err, apperr.KindConflict))
	})

	t.Run("Validation failures", func(t *testing.T) {
		service := NewUserService(new(MockUserRepository), newTokens(t), nil, nil)

		_, err := service.Register(ctx, "   ", "pw")
		assert.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = service.Register(ctx, "alice", "")
		assert.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = service.Register(ctx, strings.Repeat("a", 151), "pw")
		assert.True(t, apperr.Is(err, apperr.KindValidation))

		_, err = service.Register(ctx, "alice", strings.Repeat("p", 73))
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	})

	t.Run("Repository failure", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "carol").Return(nil, errors.New("db down"))

		_, err := service.Register(ctx, "carol", "pw")
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		tokens := newTokens(t)
		service := NewUserService(mockRepo, tokens, nil, nil)

		mockRepo.On("FindByUsername", ctx, "alice").Return(createTestUser(t, "alice", "pw"), nil)

		result, err := service.Login(ctx, "alice", "pw")

		require.NoError(t, err)
		claims, err := tokens.ParseToken(result.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Subject)
		assert.True(t, result.ExpiresAt.After(time.Now()))
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "alice").Return(createTestUser(t, "alice", "pw"), nil)

		_, err := service.Login(ctx, "alice", "nope")
		assert.True(t, apperr.Is(err, apperr.KindBadCredentials))
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo, newTokens(t), nil, nil)

		mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Login(ctx, "ghost", "pw")
		assert.True(t, apperr.Is(err, apperr.KindBadCredentials))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	tokens := newTokens(t)

	t.Run("Revokes token id until expiry", func(t *testing.T) {
		revoker := new(MockRevoker)
		service := NewUserService(new(MockUserRepository), tokens, revoker, nil)

		token, _, err := tokens.GenerateToken("alice")
		require.NoError(t, err)
		claims, err := tokens.ParseToken(token)
		require.NoError(t, err)

		revoker.On("Revoke", ctx, claims.ID, claims.ExpiresAt.Time).Return(nil)

		require.NoError(t, service.Logout(ctx, token))
		revoker.AssertExpectations(t)
	})

	t.Run("Invalid token is ignored", func(t *testing.T) {
		revoker := new(MockRevoker)
		service := NewUserService(new(MockUserRepository), tokens, revoker, nil)

		assert.NoError(t, service.Logout(ctx, ""))
		assert.NoError(t, service.Logout(ctx, "garbage"))
		revoker.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Revocation failure does not fail logout", func(t *testing.T) {
		revoker := new(MockRevoker)
		service := NewUserService(new(MockUserRepository), tokens, revoker, nil)

		token, _, err := tokens.GenerateToken("alice")
		require.NoError(t, err)
		revoker.On("Revoke", ctx, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		assert.NoError(t, service.Logout(ctx, token))
	})
}

func TestGetByUsername(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := NewUserService(mockRepo, newTokens(t), nil, nil)

	mockRepo.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByUsername(ctx, "ghost")
	assert.True(t, apperr.Is(err, apperr.KindUserNotFound))
}
