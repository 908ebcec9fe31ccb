package middleware

import (
	"context"
	"errors"
	"strings"

	"catalog_api/internal/domain/user/model"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/database"
	"catalog_api/pkg/logger"
	"catalog_api/pkg/response"
	"catalog_api/pkg/security"
	"catalog_api/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "currentUser"

// UserFinder 按用户名查找用户，不存在时返回 gorm.ErrRecordNotFound
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// SessionResolver 从请求中解析令牌并加载当前用户
type SessionResolver struct {
	tokens     *utils.JWTManager
	users      UserFinder
	revoker    security.TokenRevoker
	cookieName string
}

func NewSessionResolver(tokens *utils.JWTManager, users UserFinder, revoker security.TokenRevoker, cookieName string) *SessionResolver {
	if revoker == nil {
		revoker = security.NoopRevoker{}
	}
	return &SessionResolver{
		tokens:     tokens,
		users:      users,
		revoker:    revoker,
		cookieName: cookieName,
	}
}

// ExtractToken 优先读取 Authorization: Bearer，其次读取 cookie
func (r *SessionResolver) ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") && strings.TrimSpace(parts[1]) != "" {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(r.cookieName); err == nil {
		return cookie
	}
	return ""
}

// Resolve 校验令牌并返回对应用户
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.Unauthenticated("Not authenticated")
	}

	claims, err := r.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindExpired, "Token has expired", err)
		}
		return nil, apperr.Wrap(apperr.KindInvalidToken, "Could not validate credentials", err)
	}
	if claims.Subject == "" {
		return nil, apperr.New(apperr.KindInvalidPayload, "Invalid token payload")
	}

	revoked, err := r.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		// 黑名单存储不可用时放行，令牌本身仍然有效
		logger.Log.Warn("token revocation check failed", zap.Error(err))
	} else if revoked {
		return nil, apperr.New(apperr.KindInvalidToken, "Token has been revoked")
	}

	user, err := r.users.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, apperr.New(apperr.KindUserNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// AuthMiddleware 认证中间件，成功后将用户写入上下文
func (r *SessionResolver) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := r.Resolve(c.Request.Context(), r.ExtractToken(c))
		if err != nil {
			response.AbortWithError(c, err)
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser 获取已认证用户
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
