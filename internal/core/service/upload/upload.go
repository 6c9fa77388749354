package upload

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type uploadService struct {
	uow       port.UnitOfWork
	storage   port.ObjectStorage
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewUploadService creates a new chunked upload service
func NewUploadService(uow port.UnitOfWork, storage port.ObjectStorage, cfg config.UploadConfig, logger *slog.Logger) port.UploadService {
	return &uploadService{uow: uow, storage: storage, uploadCfg: cfg, logger: logger}
}

// validateFile resolves the file category and checks the size cap for it
func (s *uploadService) validateFile(fileName string, fileSize int64) (domain.FileType, string, error) {
	fileType, ext := s.uploadCfg.Classify(fileName)
	if fileType == domain.FileTypeUnknown {
		return domain.FileTypeUnknown, "", fmt.Errorf("%w: .%s", domain.ErrFileTypeRejected, ext)
	}
	if max := s.uploadCfg.PolicyFor(fileType).MaxSize; fileSize > max {
		return domain.FileTypeUnknown, "", fmt.Errorf("%w: %d > %d", domain.ErrFileSizeExceeded, fileSize, max)
	}
	return fileType, ext, nil
}

// buildObjectKey builds the deterministic object path for a task.
// The key is stable for the task's lifetime: "<type>/YYYY/MM/DD/<taskID>.<ext>".
func buildObjectKey(fileType domain.FileType, taskID uuid.UUID, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%s/%s.%s", fileType, now.Format("2006/01/02"), taskID, ext)
}

// findOwnedTask loads a task and checks caller ownership
func (s *uploadService) findOwnedTask(ctx context.Context, taskID uuid.UUID, userID int64) (*domain.UploadTask, error) {
	task, err := s.uow.TaskRepo().FindByTaskID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrPermissionDenied
	}
	return task, nil
}
