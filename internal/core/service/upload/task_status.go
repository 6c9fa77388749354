package upload

import (
	"context"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// GetTaskStatus returns the progress report of one upload task
func (s *uploadService) GetTaskStatus(ctx context.Context, taskID uuid.UUID, userID int64) (*domain.TaskProgress, error) {

	task, err := s.findOwnedTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}

	return &domain.TaskProgress{
		TaskID:      task.TaskID,
		FileName:    task.FileName,
		Progress:    task.Progress(),
		StatusLabel: task.Status.Label(),
	}, nil
}
