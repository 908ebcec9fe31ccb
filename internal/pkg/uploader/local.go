package uploader

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"catalog_api/internal/pkg/config"

	"github.com/google/uuid"
)

// LocalUploader 保存到本地目录，由 /static 路由对外提供
type LocalUploader struct {
	dir       string
	urlPrefix string
	maxSizeMB int
}

func NewLocalUploader(cfg config.UploadConfig) (*LocalUploader, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalUploader{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
		maxSizeMB: cfg.MaxSizeMB,
	}, nil
}

func (u *LocalUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	ext, err := checkFile(file, u.maxSizeMB)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(u.dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path.Join(u.urlPrefix, filename), nil
}

func (u *LocalUploader) Delete(ref string) error {
	if !strings.HasPrefix(ref, u.urlPrefix+"/") {
		return nil
	}
	name := filepath.Base(ref)
	if err := os.Remove(filepath.Join(u.dir, name)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
