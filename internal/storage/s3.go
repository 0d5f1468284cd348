package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/config"
)

// S3 stores objects in an S3 or S3-compatible bucket.
type S3 struct {
	client    *s3.Client
	bucket    string
	prefix    string
	publicURL string
}

func NewS3(cfg config.S3Config) (*S3, error) {
	if cfg.Bucket == "" || cfg.Region == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("incomplete s3 config: bucket, region, access key id and secret access key are required")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.UsePathStyle,
	}

	endpoint := strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		opts.BaseEndpoint = aws.String(endpoint)
		// custom endpoints (minio, r2) rarely support virtual hosts
		opts.UsePathStyle = true
	}

	publicURL := strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/")
	if publicURL == "" {
		if endpoint != "" {
			publicURL = endpoint + "/" + cfg.Bucket
		} else {
			publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		prefix:    normalizeKey(cfg.Prefix),
		publicURL: publicURL,
	}, nil
}

func (s *S3) Name() string { return "s3" }

func (s *S3) objectKey(key string) string {
	key = normalizeKey(key)
	if s.prefix == "" {
		return key
	}
	return strings.TrimSuffix(s.prefix, "/") + "/" + key
}

func (s *S3) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	objectKey := s.objectKey(key)
	if objectKey == "" {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put object: %w", err)
	}
	return s.URL(objectKey), nil
}

// URL is the public address of an already prefixed object key.
func (s *S3) URL(objectKey string) string {
	return s.publicURL + "/" + objectKey
}
