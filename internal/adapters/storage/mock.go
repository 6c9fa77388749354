package storage

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

type MockStorage struct {
	mock.Mock
}

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

func (m *MockStorage) EnsureBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *MockStorage) PutObject(ctx context.Context, bucket, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, bucket, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) PresignedUploadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PresignedPartUploadURL(ctx context.Context, bucket, objectKey string, chunkNumber int, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, objectKey, chunkNumber, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PresignedDownloadURL(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) ComposeChunks(ctx context.Context, bucket, objectKey string, partCount int) (string, error) {
	args := m.Called(ctx, bucket, objectKey, partCount)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	args := m.Called(ctx, bucket, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	args := m.Called(ctx, bucket, key)
	return args.Error(0)
}

func (m *MockStorage) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	args := m.Called(ctx, srcBucket, srcKey, dstBucket, dstKey)
	return args.Error(0)
}

func (m *MockStorage) BucketForFileType(fileType domain.FileType) string {
	args := m.Called(fileType)
	return args.String(0)
}
