// Package storage archives raw CSV import files to object storage so
// admins can audit what was uploaded.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// MinIOArchiver stores import files in a MinIO bucket.
type MinIOArchiver struct {
	client *minio.Client
	bucket string
}

// NewMinIOArchiver creates the archiver and ensures the bucket exists.
func NewMinIOArchiver(ctx context.Context, cfg config.StorageConfig) (*MinIOArchiver, error) {
	if !cfg.StorageEnabled() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	client, err := minio.New(cfg.MinioEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey(), cfg.MinioSecretKey(), ""),
		Secure: cfg.MinioUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	a := &MinIOArchiver{client: client, bucket: cfg.MinioBucket()}
	if err := a.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *MinIOArchiver) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Archive stores the upload under a date-prefixed, collision-free key.
func (a *MinIOArchiver) Archive(ctx context.Context, name string, data []byte) error {
	key := path.Join(
		time.Now().Format("2006/01/02"),
		fmt.Sprintf("%s_%s", uuid.New().String()[:8], path.Base(name)),
	)

	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return fmt.Errorf("archive import file: %w", err)
	}
	return nil
}

// NoopArchiver is used when object storage is not configured.
type NoopArchiver struct {
	log *logger.Logger
}

// NewNoopArchiver creates an archiver that only logs.
func NewNoopArchiver(log *logger.Logger) *NoopArchiver {
	return &NoopArchiver{log: log}
}

// Archive logs the skipped upload and succeeds.
func (a *NoopArchiver) Archive(_ context.Context, name string, data []byte) error {
	a.log.Debug("import archive skipped, storage disabled", "file", name, "bytes", len(data))
	return nil
}
