package common

import (
	"fmt"

	"catalog_api/docs"
	commonHandler "catalog_api/internal/pkg/common"
	"catalog_api/internal/pkg/registry"
	"catalog_api/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// CommonModule 通用功能模块：健康检查、指标、文档、静态文件
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100 // 最后初始化
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	sqlDB, err := ctx.DB.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	h := commonHandler.NewHealthHandler(database.NewHealthChecker(sqlDB))

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, sqlDB, ctx.DB.Dialector.Name()); err != nil {
		return fmt.Errorf("register pool metrics: %w", err)
	}

	setupRoutes(ctx.Router, h)

	// 本地存储时由服务直接提供图片
	if ctx.Config.Upload.Driver == "local" {
		ctx.Router.Static(ctx.Config.Upload.URLPrefix, ctx.Config.Upload.Dir)
	}
	return nil
}

func setupRoutes(r *gin.Engine, h *commonHandler.HealthHandler) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/health/db", h.HealthDB)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
