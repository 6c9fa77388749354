package port

import (
	"context"
	"io"
	"time"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// ObjectStorage is an interface to define object store interactions
type ObjectStorage interface {
	EnsureBucket(ctx context.Context, bucket string) error
	PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error
	PresignedUploadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	PresignedPartUploadURL(ctx context.Context, bucket, objectKey string, chunkNumber int, expiry time.Duration) (string, error)
	PresignedDownloadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
	// ComposeChunks concatenates part objects 1..partCount into the final object
	// at objectKey and deletes the part objects afterwards.
	ComposeChunks(ctx context.Context, bucket, objectKey string, partCount int) (string, error)
	ObjectExists(ctx context.Context, bucket, key string) (bool, error)
	DeleteObject(ctx context.Context, bucket, key string) error
	CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error
	BucketForFileType(fileType domain.FileType) string
}
