package uploader

import (
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"catalog_api/internal/pkg/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
)

type AliyunOSSUploader struct {
	bucket    *oss.Bucket
	config    config.OSSConfig
	maxSizeMB int
}

func NewAliyunOSSUploader(cfg config.OSSConfig, upload config.UploadConfig) (*AliyunOSSUploader, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, err
	}

	bucket, err := client.Bucket(cfg.BucketName)
	if err != nil {
		return nil, err
	}

	return &AliyunOSSUploader{
		bucket:    bucket,
		config:    cfg,
		maxSizeMB: upload.MaxSizeMB,
	}, nil
}

func (u *AliyunOSSUploader) UploadFile(file *multipart.FileHeader) (string, error) {
	ext, err := checkFile(file, u.maxSizeMB)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// posts/YYYYMMDD/uuid.ext
	key := fmt.Sprintf("posts/%s/%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	if err := u.bucket.PutObject(key, src); err != nil {
		return "", err
	}

	// bucket 需为 public-read 或挂 CDN
	return u.publicURL(key), nil
}

func (u *AliyunOSSUploader) Delete(ref string) error {
	prefix := u.publicURL("")
	if !strings.HasPrefix(ref, prefix) {
		return nil
	}
	return u.bucket.DeleteObject(strings.TrimPrefix(ref, prefix))
}

func (u *AliyunOSSUploader) publicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", u.config.BucketName, u.config.Endpoint, key)
}
