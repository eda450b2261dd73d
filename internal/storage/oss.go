// Package storage uploads tour images to Aliyun OSS and resolves the public
// URL clients can fetch them from.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/viettour/backend/internal/config"
)

// ProgressFunc receives upload progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// ObjectStorage uploads a blob under an object key and resolves a retrievable
// URL. Implementations report progress through the optional callback and must
// not leave a partial URL behind on failure.
type ObjectStorage interface {
	Upload(ctx context.Context, objectKey string, r io.Reader, size int64, onProgress ProgressFunc) (string, error)
}

type OSSStorage struct {
	bucket  *oss.Bucket
	prefix  string
	baseURL string
}

func NewOSS(cfg config.OSS) (*OSSStorage, error) {
	client, err := oss.New(cfg.Endpoint, cfg.AccessKeyID, cfg.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client init failed: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket init failed: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" {
		endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		baseURL = fmt.Sprintf("https://%s.%s", cfg.Bucket, endpoint)
	}

	return &OSSStorage{bucket: bucket, prefix: cfg.Prefix, baseURL: baseURL}, nil
}

// Upload streams the blob to OSS under prefix+objectKey. Progress events from
// the SDK are reduced to a 0-100 percentage of bytes transferred; the resolved
// public URL is returned only after the upload completed.
func (s *OSSStorage) Upload(ctx context.Context, objectKey string, r io.Reader, size int64, onProgress ProgressFunc) (string, error) {
	key := path.Join(s.prefix, objectKey)

	opts := []oss.Option{oss.WithContext(ctx)}
	if onProgress != nil {
		opts = append(opts, oss.Progress(&progressListener{total: size, onProgress: onProgress}))
	}

	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("oss upload failed: %w", err)
	}
	return s.PublicURL(key), nil
}

// PublicURL resolves the retrievable URL for a stored object key.
func (s *OSSStorage) PublicURL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

type progressListener struct {
	total      int64
	onProgress ProgressFunc
	last       int
}

func (l *progressListener) ProgressChanged(event *oss.ProgressEvent) {
	switch event.EventType {
	case oss.TransferDataEvent, oss.TransferCompletedEvent:
		total := l.total
		if event.TotalBytes > 0 {
			total = event.TotalBytes
		}
		percent := Percent(event.ConsumedBytes, total)
		if percent != l.last {
			l.last = percent
			l.onProgress(percent)
		}
	}
}

// Percent computes bytes-transferred over total as a clamped 0-100 value.
func Percent(consumed, total int64) int {
	if total <= 0 {
		return 0
	}
	p := int(consumed * 100 / total)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
