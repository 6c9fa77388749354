package upload_test

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

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

func activeTask(userID int64, totalChunks int) *domain.UploadTask {
	return &domain.UploadTask{
		TaskID:      uuid.New(),
		UserID:      userID,
		FileMD5:     "md5-test",
		FileName:    "movie.mp4",
		FileSize:    int64(totalChunks) * 10 * 1024 * 1024,
		ChunkSize:   10 * 1024 * 1024,
		TotalChunks: totalChunks,
		MimeType:    "video/mp4",
		BucketName:  "videos",
		ObjectKey:   "video/2026/08/29/" + uuid.NewString() + ".mp4",
		Status:      domain.TaskStatusActive,
		ExpiresAt:   time.Now().Add(24 * time.Hour),
	}
}
