package minio

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"wallpapermod/internal/domain"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// EvidenceRepository stores fetched image payloads so that removal
// decisions stay auditable after the source image disappears. Object
// keys are derived from the source URL, so re-checking a post
// overwrites rather than duplicates.
type EvidenceRepository struct {
	client  *minio.Client
	bucket  string
	retries retry.Strategy
	logger  *zlog.Zerolog
}

func NewEvidenceRepository(ctx context.Context, cfg Config, retries retry.Strategy, logger *zlog.Zerolog) (*EvidenceRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = domain.BucketEvidence
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %q: %w", bucket, err)
		}
	}

	return &EvidenceRepository{
		client:  client,
		bucket:  bucket,
		retries: retries,
		logger:  logger,
	}, nil
}

// Save stores one payload and returns its object key.
func (r *EvidenceRepository) Save(ctx context.Context, url, contentType string, data []byte) (string, error) {
	key := objectKey(url, contentType)

	err := retry.Do(func() error {
		_, err := r.client.PutObject(ctx, r.bucket, key,
			bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: contentType})
		return err
	}, r.retries)
	if err != nil {
		return "", fmt.Errorf("failed to store evidence for %s: %w", url, err)
	}
	return key, nil
}

func objectKey(url, contentType string) string {
	sum := sha256.Sum256([]byte(url))
	return domain.PathPrefixEvidence + hex.EncodeToString(sum[:16]) + extension(contentType)
}

func extension(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "bmp"):
		return ".bmp"
	default:
		return ".bin"
	}
}
