package upload

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// InitChunkUpload validates limits, performs the resume lookup and allocates a
// task with one presigned upload URL per chunk slot. Task and chunk writes plus
// URL issuance happen inside one transaction, so a failure partway leaves no
// half initialized task behind.
func (s *uploadService) InitChunkUpload(ctx context.Context, req domain.ChunkUploadRequest, userID int64) (*domain.ChunkUploadGrant, error) {

	count, err := s.uow.TaskRepo().CountActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= s.uploadCfg.MaxUploadsPerUser {
		return nil, fmt.Errorf("%w: %d active uploads", domain.ErrConcurrencyLimitExceeded, count)
	}

	// Resume: an active task with the same content hash hands back its stored
	// chunk URLs, nothing is regenerated and no rows are created.
	existing, err := s.uow.TaskRepo().FindActiveByFileMD5(ctx, req.FileMD5)
	if err != nil && !errors.Is(err, domain.ErrTaskNotFound) {
		return nil, err
	}
	if existing != nil {
		chunks, chunksErr := s.uow.ChunkRepo().FindByTaskID(ctx, existing.TaskID)
		if chunksErr != nil {
			return nil, chunksErr
		}
		urls := make([]domain.ChunkUploadURL, 0, len(chunks))
		for _, c := range chunks {
			urls = append(urls, domain.ChunkUploadURL{
				ChunkNumber: c.ChunkNumber,
				UploadURL:   c.UploadURL,
				ExpiresAt:   c.URLExpiresAt,
			})
		}
		return &domain.ChunkUploadGrant{
			TaskID:      existing.TaskID,
			FileName:    existing.FileName,
			ChunkSize:   existing.ChunkSize,
			TotalChunks: existing.TotalChunks,
			ChunkURLs:   urls,
			Existing:    true,
		}, nil
	}

	fileType, ext, err := s.validateFile(req.FileName, req.FileSize)
	if err != nil {
		return nil, err
	}

	totalChunks := domain.TotalChunksFor(req.FileSize, req.ChunkSize)
	if totalChunks == 0 {
		return nil, fmt.Errorf("%w: chunk size %d", domain.ErrInvalidChunkCount, req.ChunkSize)
	}
	if req.TotalChunks != 0 && req.TotalChunks != totalChunks {
		return nil, fmt.Errorf("%w: declared %d, expected %d", domain.ErrInvalidChunkCount, req.TotalChunks, totalChunks)
	}

	now := time.Now()
	taskID := uuid.New()
	bucket := s.storage.BucketForFileType(fileType)
	objectKey := buildObjectKey(fileType, taskID, ext, now)

	task := domain.UploadTask{
		TaskID:      taskID,
		UserID:      userID,
		FileMD5:     req.FileMD5,
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ChunkSize:   req.ChunkSize,
		TotalChunks: totalChunks,
		MimeType:    req.MimeType,
		BucketName:  bucket,
		ObjectKey:   objectKey,
		Status:      domain.TaskStatusActive,
		ExpiresAt:   now.Add(s.uploadCfg.TaskTTL),
	}

	urls := make([]domain.ChunkUploadURL, 0, totalChunks)

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {

		// Re-check the limit under a per-user advisory lock; the unlocked count
		// above only exists to fail fast.
		if lockErr := uow.TaskRepo().AcquireUserLock(ctx, userID); lockErr != nil {
			return lockErr
		}
		active, countErr := uow.TaskRepo().CountActiveByUser(ctx, userID)
		if countErr != nil {
			return countErr
		}
		if active >= s.uploadCfg.MaxUploadsPerUser {
			return fmt.Errorf("%w: %d active uploads", domain.ErrConcurrencyLimitExceeded, active)
		}

		if createErr := uow.TaskRepo().Create(ctx, task); createErr != nil {
			return createErr
		}

		urlExpiresAt := now.Add(s.uploadCfg.UploadURLTTL)
		chunks := make([]domain.ChunkRecord, 0, totalChunks)
		for i := 1; i <= totalChunks; i++ {
			url, urlErr := s.storage.PresignedPartUploadURL(ctx, bucket, objectKey, i, s.uploadCfg.UploadURLTTL)
			if urlErr != nil {
				return urlErr
			}
			chunks = append(chunks, domain.ChunkRecord{
				TaskID:       taskID,
				ChunkNumber:  i,
				UploadURL:    url,
				URLExpiresAt: urlExpiresAt,
				Status:       domain.ChunkStatusPending,
			})
			urls = append(urls, domain.ChunkUploadURL{ChunkNumber: i, UploadURL: url, ExpiresAt: urlExpiresAt})
		}

		return uow.ChunkRepo().CreateBatch(ctx, chunks)
	})
	if txErr != nil {
		if errors.Is(txErr, domain.ErrConcurrencyLimitExceeded) {
			return nil, txErr
		}
		return nil, fmt.Errorf("could not init chunk upload: %w", txErr)
	}

	s.logger.Info("chunk upload initiated",
		"task_id", taskID,
		"user_id", userID,
		"total_chunks", totalChunks,
		"object_key", objectKey)

	return &domain.ChunkUploadGrant{
		TaskID:      taskID,
		FileName:    req.FileName,
		ChunkSize:   req.ChunkSize,
		TotalChunks: totalChunks,
		ChunkURLs:   urls,
	}, nil
}
