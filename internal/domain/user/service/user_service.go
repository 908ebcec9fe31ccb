package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"catalog_api/internal/domain/user/model"
	"catalog_api/internal/domain/user/repository"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/database"
	"catalog_api/pkg/logger"
	"catalog_api/pkg/metrics"
	"catalog_api/pkg/security"
	"catalog_api/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxUsernameLen = 150
	// bcrypt 只使用前 72 字节
	maxPasswordBytes = 72
)

// LoginResult 登录结果
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserService 用户服务接口
type UserService interface {
	Register(ctx context.Context, username, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// userService 实现
type userService struct {
	repo    repository.UserRepository
	tokens  *utils.JWTManager
	revoker security.TokenRevoker
	metrics *metrics.MetricsCollector
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, tokens *utils.JWTManager, revoker security.TokenRevoker, m *metrics.MetricsCollector) UserService {
	if revoker == nil {
		revoker = security.NoopRevoker{}
	}
	return &userService{repo: repo, tokens: tokens, revoker: revoker, metrics: m}
}

// Register 注册
func (s *userService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperr.Validation("Username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return nil, apperr.Validation("Username must be at most 150 characters")
	}
	if password == "" {
		return nil, apperr.Validation("Password is required")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperr.Validation("Password must be at most 72 bytes")
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, apperr.Conflict("Username already registered")
	} else if !database.IsNotFound(err) {
		return nil, err
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{Username: username, HashedPassword: hashed}
	if err := s.repo.Create(ctx, user); err != nil {
		// 并发注册同名用户时由唯一索引兜底
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("Username already registered")
		}
		return nil, err
	}

	s.metrics.UserRegistered()
	logger.Log.Info("user registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login 校验用户名密码并签发令牌
func (s *userService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if database.IsNotFound(err) {
			s.metrics.LoginAttempt(false)
			return nil, apperr.New(apperr.KindBadCredentials, "Incorrect username or password")
		}
		return nil, err
	}
	if !security.CheckPassword(password, user.HashedPassword) {
		s.metrics.LoginAttempt(false)
		return nil, apperr.New(apperr.KindBadCredentials, "Incorrect username or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.Username)
	if err != nil {
		return nil, err
	}

	s.metrics.LoginAttempt(true)
	logger.Log.Debug("user logged in", zap.Uint("user_id", user.ID))
	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// Logout 吊销令牌；令牌缺失或已失效时无需处理
func (s *userService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseToken(token)
	if err != nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		logger.Log.Warn("failed to revoke token on logout", zap.Error(err))
	}
	return nil
}

// GetByUsername 获取用户
func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperr.New(apperr.KindUserNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}
