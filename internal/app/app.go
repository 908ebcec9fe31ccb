package app

import (
	"fmt"

	"catalog_api/internal/pkg/config"
	"catalog_api/internal/pkg/middleware"
	"catalog_api/internal/pkg/registry"
	"catalog_api/internal/pkg/uploader"
	"catalog_api/pkg/database"
	"catalog_api/pkg/metrics"
	"catalog_api/pkg/security"
	"catalog_api/pkg/utils"

	// 各业务模块在 init 中自动注册
	_ "catalog_api/internal/domain/common"
	_ "catalog_api/internal/domain/post"
	_ "catalog_api/internal/domain/tag"
	_ "catalog_api/internal/domain/user"

	userRepo "catalog_api/internal/domain/user/repository"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New 组装 HTTP 引擎：全局中间件、共享依赖与全部已注册模块
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	tokens, err := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TTL())
	if err != nil {
		return nil, fmt.Errorf("jwt manager: %w", err)
	}

	sqlxDB, err := database.NewSQLX(db)
	if err != nil {
		return nil, fmt.Errorf("sqlx: %w", err)
	}

	up, err := uploader.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("uploader: %w", err)
	}

	collector := metrics.GetGlobalCollector()
	revoker := security.NewRevoker(rdb)
	auth := middleware.NewSessionResolver(tokens, userRepo.NewUserRepository(db), revoker, cfg.JWT.CookieName)

	r := gin.New()
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(collector))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	ctx := &registry.ModuleContext{
		Config:   cfg,
		DB:       db,
		SQLX:     sqlxDB,
		Redis:    rdb,
		Router:   r,
		Auth:     auth,
		Tokens:   tokens,
		Revoker:  revoker,
		Uploader: up,
		Metrics:  collector,
	}
	if err := registry.InitModules(ctx); err != nil {
		return nil, err
	}
	return r, nil
}
