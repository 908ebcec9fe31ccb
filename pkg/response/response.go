package response

import (
	"errors"
	"net/http"

	"catalog_api/pkg/apperr"
	"catalog_api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一错误响应结构
type Response struct {
	Code    int         `json:"code"`    // 业务码
	Message string      `json:"message"` // 提示信息
	Data    interface{} `json:"data"`    // 数据
}

// Success 成功响应：直接返回资源本身，前端按资源结构解析
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 错误响应
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}

// AbortWithError 错误响应并中断后续 handler
func AbortWithError(c *gin.Context, err error) {
	FromError(c, err)
	c.Abort()
}

// FromError 根据业务错误类别写出响应，未知错误统一 500 并记录日志
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	msg := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		// 对外只暴露业务描述，底层错误写日志
		msg = appErr.Message
	}
	if status == http.StatusInternalServerError {
		logger.Log.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		if apperr.KindOf(err) == apperr.KindInternal {
			msg = "internal server error"
		}
	}
	Error(c, status, code, msg)
}

// Classify 将错误映射为 HTTP 状态码与业务码
func Classify(err error) (int, int) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest, ErrInvalidParam
	case apperr.KindBadCredentials:
		return http.StatusBadRequest, ErrAuthFailed
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized, ErrUnauthenticated
	case apperr.KindInvalidToken, apperr.KindInvalidPayload:
		return http.StatusUnauthorized, ErrTokenInvalid
	case apperr.KindExpired:
		return http.StatusUnauthorized, ErrTokenExpired
	case apperr.KindUserNotFound:
		return http.StatusUnauthorized, ErrUserNotFound
	case apperr.KindForbidden:
		return http.StatusForbidden, ErrNoPermission
	case apperr.KindNotFound:
		return http.StatusNotFound, ErrNotFound
	case apperr.KindConflict:
		return http.StatusBadRequest, ErrUserExists
	case apperr.KindUpstream:
		return http.StatusInternalServerError, ErrUpstream
	default:
		return http.StatusInternalServerError, ErrServerInternal
	}
}
