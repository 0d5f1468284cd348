package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Local writes files under a directory served at urlPrefix.
type Local struct {
	dir       string
	urlPrefix string
}

func NewLocal(dir, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (l *Local) Name() string { return "local" }

func (l *Local) Dir() string { return l.dir }

func (l *Local) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	key = normalizeKey(key)
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(l.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("create dir: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", err)
	}
	return l.urlPrefix + "/" + key, nil
}
