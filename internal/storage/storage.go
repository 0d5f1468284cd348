// Package storage puts uploaded files somewhere clients can fetch them from.
package storage

import (
	"context"
	"io"
	"strings"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
)

// Storage saves an object under key and returns its public URL.
type Storage interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Name() string
}

// New returns the S3 backend when a bucket is configured and the local disk
// backend otherwise.
func New(cfg *config.Config) (Storage, error) {
	if cfg.Storage.S3.Enabled() {
		return NewS3(cfg.Storage.S3)
	}
	return NewLocal(cfg.Upload.Dir, "/uploads")
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = strings.TrimPrefix(key, "/")
	for strings.Contains(key, "//") {
		key = strings.ReplaceAll(key, "//", "/")
	}
	return key
}
