package uploader

import (
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"catalog_api/internal/pkg/config"
)

// ErrInvalidImage 图片类型或大小不符合要求
var ErrInvalidImage = errors.New("invalid image")

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// Uploader 图片存储
type Uploader interface {
	// UploadFile 保存文件并返回可公开访问的路径或 URL
	UploadFile(file *multipart.FileHeader) (string, error)
	// Delete 删除 UploadFile 返回的引用，引用不属于本存储时忽略
	Delete(ref string) error
}

// New 按配置选择存储驱动
func New(cfg *config.Config) (Uploader, error) {
	switch cfg.Upload.Driver {
	case "local":
		return NewLocalUploader(cfg.Upload)
	case "oss":
		return NewAliyunOSSUploader(cfg.OSS, cfg.Upload)
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.Upload.Driver)
	}
}

// checkFile 校验扩展名与大小，返回规范化的扩展名
func checkFile(file *multipart.FileHeader, maxSizeMB int) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q", ErrInvalidImage, ext)
	}
	if maxSizeMB > 0 && file.Size > int64(maxSizeMB)<<20 {
		return "", fmt.Errorf("%w: exceeds %d MB", ErrInvalidImage, maxSizeMB)
	}
	return ext, nil
}
