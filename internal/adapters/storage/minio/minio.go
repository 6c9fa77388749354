package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter with every configured bucket created
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	a := &Adapter{client: client, config: cfg, logger: logger}

	for _, bucket := range cfg.Buckets() {
		if err := a.EnsureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// EnsureBucket creates the bucket if it does not exist yet
func (a *Adapter) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := a.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}
	return nil
}

// PutObject uploads a whole object in one request
func (a *Adapter) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}
	return nil
}

// PresignedUploadURL generates a presigned url for a simple upload
func (a *Adapter) PresignedUploadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	presignedURL, err := a.client.PresignedPutObject(ctx, bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}
	return presignedURL.String(), nil
}

// PresignedPartUploadURL generates a presigned url for one part object of a
// chunked upload
func (a *Adapter) PresignedPartUploadURL(ctx context.Context, bucket, objectKey string, chunkNumber int, expiry time.Duration) (string, error) {
	partKey := domain.PartObjectKey(objectKey, chunkNumber)
	presignedURL, err := a.client.PresignedPutObject(ctx, bucket, partKey, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for part %d: %w", chunkNumber, err)
	}
	return presignedURL.String(), nil
}

// PresignedDownloadURL generates a presigned URL for downloading a file
func (a *Adapter) PresignedDownloadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	presignedURL, err := a.client.PresignedGetObject(ctx, bucket, key, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return presignedURL.String(), nil
}

// ComposeChunks concatenates part objects 1..partCount into the final object
// at objectKey, then deletes the part objects. Returns the merged object's etag.
func (a *Adapter) ComposeChunks(ctx context.Context, bucket, objectKey string, partCount int) (string, error) {
	sources := make([]minio.CopySrcOptions, 0, partCount)
	for i := 1; i <= partCount; i++ {
		sources = append(sources, minio.CopySrcOptions{
			Bucket: bucket,
			Object: domain.PartObjectKey(objectKey, i),
		})
	}

	dst := minio.CopyDestOptions{
		Bucket: bucket,
		Object: objectKey,
	}

	info, err := a.client.ComposeObject(ctx, dst, sources...)
	if err != nil {
		return "", fmt.Errorf("failed to compose %d parts into %s: %w", partCount, objectKey, err)
	}

	for i := 1; i <= partCount; i++ {
		partKey := domain.PartObjectKey(objectKey, i)
		if err := a.DeleteObject(ctx, bucket, partKey); err != nil {
			// the merged object is already in place, only the part lingers
			a.logger.Warn("failed to delete part object after compose",
				slog.String("bucket", bucket),
				slog.String("partKey", partKey))
		}
	}

	a.logger.Info("chunks composed",
		slog.String("bucket", bucket),
		slog.String("objectKey", objectKey),
		slog.Int("parts", partCount))

	return info.ETag, nil
}

// ObjectExists reports whether the object is present in the bucket
func (a *Adapter) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, err := a.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		var respErr minio.ErrorResponse
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, bucket, key string) error {
	err := a.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// CopyObject server-side copies an object between buckets
func (a *Adapter) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := a.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: dstBucket, Object: dstKey},
		minio.CopySrcOptions{Bucket: srcBucket, Object: srcKey},
	)
	if err != nil {
		return fmt.Errorf("failed to copy object: %w", err)
	}
	return nil
}

// BucketForFileType maps a file category to its bucket
func (a *Adapter) BucketForFileType(fileType domain.FileType) string {
	switch fileType {
	case domain.FileTypeImage:
		return a.config.ImageBucket
	case domain.FileTypeVideo:
		return a.config.VideoBucket
	case domain.FileTypeAudio:
		return a.config.AudioBucket
	case domain.FileTypeDocument:
		return a.config.DocumentBucket
	default:
		return a.config.DefaultBucket
	}
}
