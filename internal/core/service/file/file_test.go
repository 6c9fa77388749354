package file_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/repository"
	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

var uuid0 uuid.UUID

var defaultCfg = config.UploadConfig{
	MaxUploadsPerUser:  5,
	ChunkThreshold:     10 * 1024 * 1024,
	QuickUploadEnabled: true,
	TaskTTL:            24 * time.Hour,
	UploadURLTTL:       30 * time.Minute,
	DownloadURLTTL:     24 * time.Hour,
	CleanupEvery:       15 * time.Minute,
	ImageExts:          []string{"jpg", "jpeg", "png", "gif"},
	ImageMaxSize:       10 * 1024 * 1024,
	VideoExts:          []string{"mp4", "avi", "mov"},
	VideoMaxSize:       1024 * 1024 * 1024,
	AudioExts:          []string{"mp3", "wav"},
	AudioMaxSize:       100 * 1024 * 1024,
	DocExts:            []string{"pdf", "txt", "zip"},
	DocMaxSize:         50 * 1024 * 1024,
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// storedRecord is an already persisted active record owned by the given user.
func storedRecord(userID int64) *domain.FileRecord {
	return &domain.FileRecord{
		FileID:       uuid.New(),
		FileName:     "cover.png",
		FileSize:     512 * 1024,
		FileType:     domain.FileTypeImage,
		MimeType:     "image/png",
		FileExt:      "png",
		BucketName:   "images",
		ObjectKey:    "image/2026/08/29/" + uuid.NewString() + ".png",
		FileMD5:      "md5-cover",
		DownloadURL:  "http://minio/stored-url",
		URLExpiresAt: time.Now().Add(time.Hour),
		Status:       domain.FileStatusActive,
		UserID:       userID,
	}
}

// lastCreatedRecord digs the record out of the most recent Create expectation
// on the file repository mock.
func lastCreatedRecord(t *testing.T, mockUow *repository.MockUnitOfWork) domain.FileRecord {
	t.Helper()
	calls := mockUow.GetFileRepoMock().Calls
	for i := len(calls) - 1; i >= 0; i-- {
		if calls[i].Method == "Create" {
			return calls[i].Arguments.Get(1).(domain.FileRecord)
		}
	}
	require.FailNow(t, "no Create call recorded")
	return domain.FileRecord{}
}
