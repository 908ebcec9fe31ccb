package handler

import (
	"context"
	"net/http"

	"catalog_api/pkg/response"

	"github.com/gin-gonic/gin"
)

// DBChecker 数据库连通性检查
type DBChecker interface {
	Check(ctx context.Context) error
}

// HealthHandler 健康检查
type HealthHandler struct {
	db DBChecker
}

func NewHealthHandler(db DBChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

// Root 欢迎信息
// @Summary 欢迎信息
// @Tags Common
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Root(c *gin.Context) {
	response.Success(c, gin.H{"message": "Welcome to the catalog API"})
}

// Health 存活检查
// @Summary 存活检查
// @Tags Common
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// HealthDB 数据库检查
// @Summary 数据库检查
// @Tags Common
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} response.Response
// @Router /health/db [get]
func (h *HealthHandler) HealthDB(c *gin.Context) {
	if err := h.db.Check(c.Request.Context()); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "Database connection failed: "+err.Error())
		return
	}
	response.Success(c, gin.H{"status": "Database connection successful"})
}
