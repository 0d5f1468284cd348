package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/models"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/storage"
	"github.com/sirupsen/logrus"
)

type UploadService struct {
	store       storage.Storage
	maxFileSize int64
	allowed     map[string]bool
	activity    *ActivityLogService
}

func NewUploadService(store storage.Storage, maxFileSize int64, allowedExtensions []string, activity *ActivityLogService) *UploadService {
	allowed := make(map[string]bool, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.TrimPrefix(strings.ToLower(ext), ".")] = true
	}
	return &UploadService{
		store:       store,
		maxFileSize: maxFileSize,
		allowed:     allowed,
		activity:    activity,
	}
}

// Upload stores one file under a random name keeping its extension.
func (s *UploadService) Upload(ctx context.Context, actor Actor, filename, contentType string, size int64, body io.Reader) (*models.UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowed[strings.TrimPrefix(ext, ".")] {
		return nil, apperr.BadRequest("Invalid file type. Only images are allowed")
	}
	if size > s.maxFileSize {
		return nil, apperr.New(http.StatusRequestEntityTooLarge, apperr.CodePayloadTooLarge,
			fmt.Sprintf("File too large. Maximum size is %d bytes", s.maxFileSize))
	}

	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		}
	}

	name := uuid.New().String() + ext
	url, err := s.store.Put(ctx, name, body, size, contentType)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"backend":  s.store.Name(),
			"filename": filename,
		}).WithError(err).Error("upload failed")
		return nil, apperr.Internal(err)
	}

	result := &models.UploadResult{
		URL:      url,
		Filename: name,
		Mimetype: contentType,
		Size:     size,
	}

	s.activity.Log(actor, models.ActionUpload, models.EntityFile, "", map[string]interface{}{
		"filename": name,
		"original": filename,
		"size":     size,
	})
	return result, nil
}
