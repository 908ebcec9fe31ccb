package handler

import (
	"net/http"

	"catalog_api/internal/domain/user/service"
	"catalog_api/internal/pkg/config"
	"catalog_api/internal/pkg/middleware"
	"catalog_api/pkg/apperr"
	"catalog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
	auth    *middleware.SessionResolver
	jwt     config.JWTConfig
}

// NewUserHandler 创建处理器
func NewUserHandler(s service.UserService, auth *middleware.SessionResolver, jwt config.JWTConfig) *UserHandler {
	return &UserHandler{service: s, auth: auth, jwt: jwt}
}

// RegisterInput 注册输入
type RegisterInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginInput 登录输入（表单）
type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// UserView 用户信息
type UserView struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// TokenView 登录返回
type TokenView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register 处理注册请求
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "用户名和密码"
// @Success 200 {object} UserView
// @Failure 400 {object} response.Response
// @Router /register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.FromError(c, apperr.Validation(err.Error()))
		return
	}

	user, err := h.service.Register(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, UserView{ID: user.ID, Username: user.Username})
}

// Login 处理登录请求，令牌同时写入 HttpOnly cookie
// @Summary 登录
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "用户名"
// @Param password formData string true "密码"
// @Success 200 {object} TokenView
// @Failure 400 {object} response.Response
// @Router /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		response.FromError(c, apperr.Validation(err.Error()))
		return
	}

	result, err := h.service.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.jwt.CookieName, result.AccessToken, int(h.jwt.TTL().Seconds()), "/", "", h.jwt.CookieSecure, true)
	response.Success(c, TokenView{AccessToken: result.AccessToken, TokenType: "bearer"})
}

// Logout 清除 cookie 并吊销当前令牌
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), h.auth.ExtractToken(c)); err != nil {
		response.FromError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.jwt.CookieName, "", -1, "/", "", h.jwt.CookieSecure, true)
	response.Success(c, gin.H{"message": "Logged out successfully"})
}

// Me 当前用户
// @Summary 当前用户
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserView
// @Failure 401 {object} response.Response
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.FromError(c, apperr.Unauthenticated("Not authenticated"))
		return
	}
	response.Success(c, UserView{ID: user.ID, Username: user.Username})
}
