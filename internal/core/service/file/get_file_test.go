package file_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/repository"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/storage"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/file"
)

func TestGetFile_FreshURLIsReturnedAsIs(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	record := storedRecord(42)
	mockUow.GetFileRepoMock().On("FindByFileID", ctx, record.FileID).Return(record, nil)

	// Act
	got, err := svc.GetFile(ctx, record.FileID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, record.DownloadURL, got.DownloadURL)
	mockStorage.AssertNotCalled(t, "PresignedDownloadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUow.GetFileRepoMock().AssertNotCalled(t, "UpdateDownloadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetFile_ExpiredURLIsRegenerated(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	record := storedRecord(42)
	record.URLExpiresAt = time.Now().Add(-time.Minute)

	mockUow.GetFileRepoMock().On("FindByFileID", ctx, record.FileID).Return(record, nil)
	mockStorage.On("PresignedDownloadURL", ctx, record.BucketName, record.ObjectKey, defaultCfg.DownloadURLTTL).
		Return("http://minio/fresh-url", nil)
	mockUow.GetFileRepoMock().On("UpdateDownloadURL", ctx, record.FileID, "http://minio/fresh-url", mock.Anything).
		Return(nil)

	// Act
	got, err := svc.GetFile(ctx, record.FileID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://minio/fresh-url", got.DownloadURL)
	assert.True(t, got.URLExpiresAt.After(time.Now()))
}

func TestGetFile_NotFound(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	fileID := uuid.New()
	mockUow.GetFileRepoMock().On("FindByFileID", ctx, fileID).
		Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)

	// Act
	got, err := svc.GetFile(ctx, fileID)

	// Assert
	assert.ErrorIs(t, err, domain.ErrFileNotFound)
	assert.Nil(t, got)
}

func TestGetDownloadURL_AlwaysIssuesFreshURLAndCounts(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	record := storedRecord(42)
	record.DownloadCount = 3

	mockUow.GetFileRepoMock().On("FindByFileID", ctx, record.FileID).Return(record, nil)
	mockStorage.On("PresignedDownloadURL", ctx, record.BucketName, record.ObjectKey, defaultCfg.DownloadURLTTL).
		Return("http://minio/fresh-url", nil)
	mockUow.GetFileRepoMock().On("UpdateDownloadURL", ctx, record.FileID, "http://minio/fresh-url", mock.Anything).
		Return(nil)
	mockUow.GetFileRepoMock().On("IncrementDownloadCount", ctx, record.FileID).Return(nil)

	// Act
	got, err := svc.GetDownloadURL(ctx, record.FileID, 42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://minio/fresh-url", got.DownloadURL)
	assert.Equal(t, int64(4), got.DownloadCount)
	mockUow.GetFileRepoMock().AssertCalled(t, "IncrementDownloadCount", ctx, record.FileID)
}

func TestGetDownloadURL_CountFailureDoesNotFailRequest(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	record := storedRecord(42)

	mockUow.GetFileRepoMock().On("FindByFileID", ctx, record.FileID).Return(record, nil)
	mockStorage.On("PresignedDownloadURL", ctx, record.BucketName, record.ObjectKey, defaultCfg.DownloadURLTTL).
		Return("http://minio/fresh-url", nil)
	mockUow.GetFileRepoMock().On("UpdateDownloadURL", ctx, record.FileID, "http://minio/fresh-url", mock.Anything).
		Return(nil)
	mockUow.GetFileRepoMock().On("IncrementDownloadCount", ctx, record.FileID).Return(assert.AnError)

	// Act
	got, err := svc.GetDownloadURL(ctx, record.FileID, 42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://minio/fresh-url", got.DownloadURL)
}
