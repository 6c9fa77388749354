package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type cleanupService struct {
	uow     port.UnitOfWork
	storage port.ObjectStorage
	logger  *slog.Logger
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(uow port.UnitOfWork, storage port.ObjectStorage, logger *slog.Logger) port.CleanupService {
	return &cleanupService{uow: uow, storage: storage, logger: logger}
}

// CleanupExpiredTasks cancels every active task past its deadline and removes
// the part objects it left behind. One task failing does not stop the sweep.
func (c *cleanupService) CleanupExpiredTasks(ctx context.Context, now time.Time) error {

	tasks, err := c.uow.TaskRepo().FindAllExpired(ctx, now)
	if err != nil {
		return err
	}

	for _, task := range tasks {
		won, casErr := c.uow.TaskRepo().UpdateStatusIfActive(ctx, task.TaskID, domain.TaskStatusCancelled)
		if casErr != nil {
			c.logger.Error("failed to cancel expired task", "task_id", task.TaskID, "error", casErr)
			continue
		}
		if !won {
			// finalized concurrently, nothing to clean
			continue
		}

		deleted := 0
		for i := 1; i <= task.TotalChunks; i++ {
			partKey := domain.PartObjectKey(task.ObjectKey, i)
			exists, existsErr := c.storage.ObjectExists(ctx, task.BucketName, partKey)
			if existsErr != nil || !exists {
				continue
			}
			if delErr := c.storage.DeleteObject(ctx, task.BucketName, partKey); delErr == nil {
				deleted++
			}
		}
		c.logger.Info("expired task cancelled", "task_id", task.TaskID, "deleted_parts", deleted)
	}

	c.logger.Info("expired task sweep completed", "tasks", len(tasks))
	return nil
}
