package user

import (
	"catalog_api/internal/domain/user/handler"
	"catalog_api/internal/domain/user/repository"
	"catalog_api/internal/domain/user/service"
	"catalog_api/internal/pkg/middleware"
	"catalog_api/internal/pkg/registry"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	// 自动注册模块
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	// 用户模块优先级最高，因为其他模块可能依赖它
	return 1
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	// 1. 依赖注入
	userRepo := repository.NewUserRepository(ctx.DB)
	userService := service.NewUserService(userRepo, ctx.Tokens, ctx.Revoker, ctx.Metrics)
	userHandler := handler.NewUserHandler(userService, ctx.Auth, ctx.Config.JWT)

	// rps <= 0 表示不限流
	limit := rate.Inf
	if ctx.Config.RateLimit.RPS > 0 {
		limit = rate.Limit(ctx.Config.RateLimit.RPS)
	}
	limiter := middleware.NewIPRateLimiter(limit, ctx.Config.RateLimit.Burst)

	// 2. 路由注册
	setupRoutes(ctx.Router, userHandler, ctx.Auth, limiter)

	return nil
}

func setupRoutes(r *gin.Engine, h *handler.UserHandler, auth *middleware.SessionResolver, limiter *middleware.IPRateLimiter) {
	// 公开路由
	r.POST("/register", limiter.Middleware(), h.Register)
	r.POST("/login", limiter.Middleware(), h.Login)
	r.POST("/logout", h.Logout)

	// 受保护的路由
	userGroup := r.Group("/users")
	userGroup.Use(auth.AuthMiddleware())
	{
		userGroup.GET("/me", h.Me)
	}
}
