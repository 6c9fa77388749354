package file_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/repository"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/storage"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/file"
)

func TestRequestUploadURL_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	req := domain.FileUploadRequest{
		FileName: "song.mp3",
		FileSize: 4 * 1024 * 1024,
		FileMD5:  "md5-song",
		MimeType: "audio/mpeg",
	}

	mockUow.GetFileRepoMock().On("FindActiveByFileMD5", ctx, "md5-song").
		Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)
	mockStorage.On("BucketForFileType", domain.FileTypeAudio).Return("audios")
	mockStorage.On("PresignedUploadURL", ctx, "audios", mock.Anything, defaultCfg.UploadURLTTL).
		Return("http://minio/put-url", nil)
	mockUow.On("Execute", ctx, mock.Anything).Return(nil)
	mockUow.GetFileRepoMock().On("Create", ctx, mock.Anything).Return(nil)

	// Act
	result, err := svc.RequestUploadURL(ctx, req, 42)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "http://minio/put-url", result.UploadURL)
	assert.Empty(t, result.DownloadURL)
	assert.False(t, result.NeedChunkUpload)
	require.NotNil(t, result.URLExpiresAt)

	created := lastCreatedRecord(t, mockUow)
	assert.Equal(t, "audios", created.BucketName)
	assert.Contains(t, created.ObjectKey, "audio/")
	// the record is created before any bytes arrive, so no stored download URL yet
	assert.Empty(t, created.DownloadURL)
	mockStorage.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestUploadURL_QuickUploadShortCircuits(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	existing := storedRecord(7)
	req := domain.FileUploadRequest{
		FileName: "copy-of-cover.png",
		FileSize: existing.FileSize,
		FileMD5:  existing.FileMD5,
		MimeType: "image/png",
	}

	mockUow.GetFileRepoMock().On("FindActiveByFileMD5", ctx, existing.FileMD5).
		Return(existing, nil)
	mockStorage.On("PresignedDownloadURL", ctx, existing.BucketName, existing.ObjectKey, defaultCfg.DownloadURLTTL).
		Return("http://minio/dedup-url", nil)
	mockUow.GetFileRepoMock().On("Create", ctx, mock.Anything).Return(nil)

	// Act
	result, err := svc.RequestUploadURL(ctx, req, 42)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.QuickUpload)
	assert.Empty(t, result.UploadURL)
	mockStorage.AssertNotCalled(t, "PresignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestUploadURL_LargeFileNeedsChunkUpload(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	req := domain.FileUploadRequest{
		FileName: "movie.mp4",
		FileSize: defaultCfg.ChunkThreshold + 1,
		FileMD5:  "md5-movie",
		MimeType: "video/mp4",
	}

	mockUow.GetFileRepoMock().On("FindActiveByFileMD5", ctx, "md5-movie").
		Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)

	// Act
	result, err := svc.RequestUploadURL(ctx, req, 42)

	// Assert
	require.NoError(t, err)
	assert.True(t, result.NeedChunkUpload)
	mockStorage.AssertNotCalled(t, "PresignedUploadURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUow.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestRequestUploadURL_PresignFailure(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	svc := file.NewFileService(mockUow, mockStorage, defaultCfg, discardLogger)

	req := domain.FileUploadRequest{
		FileName: "notes.txt",
		FileSize: 64,
		FileMD5:  "md5-notes",
	}

	mockUow.GetFileRepoMock().On("FindActiveByFileMD5", ctx, "md5-notes").
		Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)
	mockStorage.On("BucketForFileType", domain.FileTypeDocument).Return("documents")
	mockStorage.On("PresignedUploadURL", ctx, "documents", mock.Anything, defaultCfg.UploadURLTTL).
		Return("", assert.AnError)

	// Act
	result, err := svc.RequestUploadURL(ctx, req, 42)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	mockUow.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
