package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// CompleteChunkUpload validates that every chunk slot is uploaded, asks the
// store to compose the parts into the final object and materializes the file
// record. Chunk updates happen before compose, compose before the task leaves
// Active: a reader observing Completed can rely on the object existing.
func (s *uploadService) CompleteChunkUpload(ctx context.Context, taskID uuid.UUID, chunks []domain.ChunkETag, userID int64) (*domain.FileRecord, error) {

	task, err := s.findOwnedTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task.Status != domain.TaskStatusActive {
		return nil, fmt.Errorf("%w: task is %s", domain.ErrInvalidTaskState, task.Status)
	}

	for _, c := range chunks {
		if c.ChunkNumber < 1 || c.ChunkNumber > task.TotalChunks {
			return nil, fmt.Errorf("%w: chunk %d out of range", domain.ErrInvalidChunkCount, c.ChunkNumber)
		}
	}

	// Persist the client reported etags and mark those slots uploaded. On an
	// incomplete set the marks survive and the caller retries with the rest.
	var uploaded int
	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		for _, c := range chunks {
			if markErr := uow.ChunkRepo().MarkUploaded(ctx, taskID, c.ChunkNumber, c.ETag); markErr != nil {
				return markErr
			}
		}
		countErr := error(nil)
		uploaded, countErr = uow.ChunkRepo().CountByTaskIDAndStatus(ctx, taskID, domain.ChunkStatusUploaded)
		if countErr != nil {
			return countErr
		}
		return uow.TaskRepo().RefreshProgress(ctx, taskID)
	})
	if txErr != nil {
		return nil, txErr
	}

	if uploaded < task.TotalChunks {
		return nil, fmt.Errorf("%w: %d of %d uploaded", domain.ErrIncompleteChunks, uploaded, task.TotalChunks)
	}

	if _, composeErr := s.storage.ComposeChunks(ctx, task.BucketName, task.ObjectKey, task.TotalChunks); composeErr != nil {
		// Merge failure is terminal; a new upload has to be initiated.
		if _, failErr := s.uow.TaskRepo().UpdateStatusIfActive(ctx, taskID, domain.TaskStatusFailed); failErr != nil {
			s.logger.Error("failed to mark task failed after merge failure", "task_id", taskID, "error", failErr)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMergeFailed, composeErr)
	}

	// Only one completion call may take the task out of Active.
	won, casErr := s.uow.TaskRepo().UpdateStatusIfActive(ctx, taskID, domain.TaskStatusCompleted)
	if casErr != nil {
		return nil, casErr
	}
	if !won {
		return nil, fmt.Errorf("%w: task already finalized", domain.ErrInvalidTaskState)
	}

	fileType, ext := s.uploadCfg.Classify(task.FileName)
	downloadURL, urlErr := s.storage.PresignedDownloadURL(ctx, task.BucketName, task.ObjectKey, s.uploadCfg.DownloadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}

	record := domain.FileRecord{
		FileID:       uuid.New(),
		FileName:     task.FileName,
		FileSize:     task.FileSize,
		FileType:     fileType,
		MimeType:     task.MimeType,
		FileExt:      ext,
		BucketName:   task.BucketName,
		ObjectKey:    task.ObjectKey,
		FileMD5:      task.FileMD5,
		DownloadURL:  downloadURL,
		URLExpiresAt: time.Now().Add(s.uploadCfg.DownloadURLTTL),
		Status:       domain.FileStatusActive,
		UserID:       task.UserID,
	}
	if createErr := s.uow.FileRepo().Create(ctx, record); createErr != nil {
		return nil, createErr
	}

	s.logger.Info("chunk upload completed",
		"task_id", taskID,
		"file_id", record.FileID,
		"total_chunks", task.TotalChunks)

	return &record, nil
}
