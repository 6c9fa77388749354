package upload

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// CancelUploadTask marks the task cancelled and then removes whatever part
// objects already landed in the store. Cleanup is advisory: every outcome is
// collected and logged, none is surfaced to the caller.
func (s *uploadService) CancelUploadTask(ctx context.Context, taskID uuid.UUID, userID int64) error {

	task, err := s.findOwnedTask(ctx, taskID, userID)
	if err != nil {
		return err
	}

	// repeat cancels are a no-op
	if task.Status == domain.TaskStatusCancelled {
		return nil
	}

	won, updateErr := s.uow.TaskRepo().UpdateStatusIfActive(ctx, taskID, domain.TaskStatusCancelled)
	if updateErr != nil {
		return updateErr
	}
	if !won {
		return fmt.Errorf("%w: task is %s", domain.ErrInvalidTaskState, task.Status)
	}

	report := s.cleanupParts(ctx, task)
	if report.Failed() > 0 {
		s.logger.Warn("part cleanup incomplete after cancellation",
			"task_id", taskID,
			"deleted", report.Deleted(),
			"failed", report.Failed())
	} else {
		s.logger.Info("upload task cancelled",
			"task_id", taskID,
			"deleted_parts", report.Deleted())
	}

	return nil
}

// cleanupParts checks every chunk slot's expected part location and deletes
// what is present. Deletions are independent and order insensitive.
func (s *uploadService) cleanupParts(ctx context.Context, task *domain.UploadTask) *domain.CleanupReport {
	report := &domain.CleanupReport{Outcomes: make([]domain.ChunkCleanupOutcome, 0, task.TotalChunks)}

	for i := 1; i <= task.TotalChunks; i++ {
		partKey := domain.PartObjectKey(task.ObjectKey, i)
		outcome := domain.ChunkCleanupOutcome{ChunkNumber: i}

		exists, err := s.storage.ObjectExists(ctx, task.BucketName, partKey)
		if err != nil {
			outcome.Err = err
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}
		if exists {
			if err := s.storage.DeleteObject(ctx, task.BucketName, partKey); err != nil {
				outcome.Err = err
			} else {
				outcome.Deleted = true
			}
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report
}
