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

	"batch-whisper/internal/app/converter/export"
	apperrors "batch-whisper/internal/app/errors"
)

// MinioConfig holds the bucket connection settings.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// Prefix is prepended to every object key.
	Prefix string
}

// MinioWriter uploads artifacts to a MinIO or S3 bucket.
type MinioWriter struct {
	client *minio.Client
	cfg    MinioConfig
	now    func() time.Time
}

// NewMinioWriter connects to the endpoint and creates the bucket if missing.
func NewMinioWriter(ctx context.Context, cfg MinioConfig) (*MinioWriter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinioWriter{client: client, cfg: cfg, now: time.Now}, nil
}

func (w *MinioWriter) Write(ctx context.Context, artifact export.Artifact) (Location, error) {
	key := w.objectKey(artifact.Name)
	_, err := w.client.PutObject(ctx, w.cfg.Bucket, key, bytes.NewReader(artifact.Data), int64(len(artifact.Data)),
		minio.PutObjectOptions{
			ContentType: artifact.ContentType,
			UserMetadata: map[string]string{
				"original-name": artifact.Name,
				"exported-at":   w.now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return Location{}, apperrors.Wrapf(err, "failed to upload %s to MinIO", artifact.Name)
	}
	return Location{Key: key, URL: w.FileURL(key)}, nil
}

// objectKey groups each export under a timestamped unique folder so repeated
// exports never overwrite each other.
func (w *MinioWriter) objectKey(name string) string {
	folder := fmt.Sprintf("%d-%s", w.now().Unix(), uuid.New().String()[:8])
	return path.Join(w.cfg.Prefix, folder, path.Base(name))
}

// FileURL returns the URL for accessing an object.
func (w *MinioWriter) FileURL(key string) string {
	protocol := "http"
	if w.cfg.UseSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, w.cfg.Endpoint, w.cfg.Bucket, key)
}
