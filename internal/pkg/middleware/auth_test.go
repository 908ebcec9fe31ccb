package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog_api/internal/domain/user/model"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/response"
	"catalog_api/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type stubRevoker struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevoker) Revoke(_ context.Context, jti string, _ time.Time) error {
	s.revoked[jti] = true
	return nil
}

func (s *stubRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[jti], nil
}

func newResolver(t *testing.T, users UserFinder, revoker *stubRevoker) (*SessionResolver, *utils.JWTManager) {
	t.Helper()
	tokens, err := utils.NewJWTManager("test-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)
	return NewSessionResolver(tokens, users, revoker, "access_token"), tokens
}

func protectedRouter(r *SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", r.AuthMiddleware(), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	users := new(MockUserFinder)
	resolver, tokens := newResolver(t, users, &stubRevoker{revoked: map[string]bool{}})
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)

	token, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	protectedRouter(resolver).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())
	users.AssertExpectations(t)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	users := new(MockUserFinder)
	resolver, tokens := newResolver(t, users, &stubRevoker{revoked: map[string]bool{}})
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)

	token, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	w := httptest.NewRecorder()
	protectedRouter(resolver).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	users := new(MockUserFinder)
	revoker := &stubRevoker{revoked: map[string]bool{}}
	resolver, tokens := newResolver(t, users, revoker)
	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	expired, _, err := tokens.Issue("alice", -time.Minute)
	require.NoError(t, err)
	noSubject, _, err := tokens.Issue("", time.Minute)
	require.NoError(t, err)
	ghost, _, err := tokens.GenerateToken("ghost")
	require.NoError(t, err)

	revokedToken, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)
	claims, err := tokens.ParseToken(revokedToken)
	require.NoError(t, err)
	revoker.revoked[claims.ID] = true

	other, err := utils.NewJWTManager("other-secret", "HS256", time.Minute)
	require.NoError(t, err)
	foreign, _, err := other.GenerateToken("alice")
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		code    int
		message string
	}{
		{"missing", "", response.ErrUnauthenticated, "Not authenticated"},
		{"malformed", "Bearer not-a-jwt", response.ErrTokenInvalid, "Could not validate credentials"},
		{"wrong secret", "Bearer " + foreign, response.ErrTokenInvalid, "Could not validate credentials"},
		{"expired", "Bearer " + expired, response.ErrTokenExpired, "Token has expired"},
		{"no subject", "Bearer " + noSubject, response.ErrTokenInvalid, "Invalid token payload"},
		{"revoked", "Bearer " + revokedToken, response.ErrTokenInvalid, "Token has been revoked"},
		{"unknown user", "Bearer " + ghost, response.ErrUserNotFound, "User not found"},
	}

	router := protectedRouter(resolver)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestResolve_RevocationStoreDownAllowsToken(t *testing.T) {
	users := new(MockUserFinder)
	resolver, tokens := newResolver(t, users, &stubRevoker{err: errors.New("redis down")})
	users.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)

	token, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	user, err := resolver.Resolve(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestResolve_LookupFailureIsInternal(t *testing.T) {
	users := new(MockUserFinder)
	resolver, tokens := newResolver(t, users, &stubRevoker{revoked: map[string]bool{}})
	users.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("db down"))

	token, _, err := tokens.GenerateToken("alice")
	require.NoError(t, err)

	_, err = resolver.Resolve(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}

func TestExtractToken_HeaderWinsOverCookie(t *testing.T) {
	resolver, _ := newResolver(t, new(MockUserFinder), &stubRevoker{revoked: map[string]bool{}})

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer from-header")
	c.Request.AddCookie(&http.Cookie{Name: "access_token", Value: "from-cookie"})
	assert.Equal(t, "from-header", resolver.ExtractToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", resolver.ExtractToken(c))
}
