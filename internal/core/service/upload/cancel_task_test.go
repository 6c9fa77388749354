package upload_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/repository"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/storage"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/upload"
)

func TestUploadService_CancelUploadTask_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := upload.NewUploadService(mockUow, mockStorage, defaultCfg, discardLogger)

	task := activeTask(1, 3)
	mockUow.GetTaskRepoMock().On("FindByTaskID", ctx, task.TaskID).Return(task, nil)
	mockUow.GetTaskRepoMock().On("UpdateStatusIfActive", ctx, task.TaskID, domain.TaskStatusCancelled).
		Return(true, nil)

	// parts 1 and 2 landed, part 3 never did
	for i := 1; i <= 2; i++ {
		partKey := domain.PartObjectKey(task.ObjectKey, i)
		mockStorage.On("ObjectExists", ctx, task.BucketName, partKey).Return(true, nil)
		mockStorage.On("DeleteObject", ctx, task.BucketName, partKey).Return(nil)
	}
	mockStorage.On("ObjectExists", ctx, task.BucketName, domain.PartObjectKey(task.ObjectKey, 3)).
		Return(false, nil)

	// Act
	err := service.CancelUploadTask(ctx, task.TaskID, 1)

	// Assert
	assert.NoError(t, err)
	mockStorage.AssertNumberOfCalls(t, "DeleteObject", 2)
	mockUow.AssertExpectations(t)
}

func TestUploadService_CancelUploadTask_StoreErrorsDoNotFailCancel(t *testing.T) {
	// Arrange - cleanup is best effort, store failures stay internal
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := upload.NewUploadService(mockUow, mockStorage, defaultCfg, discardLogger)

	task := activeTask(1, 2)
	mockUow.GetTaskRepoMock().On("FindByTaskID", ctx, task.TaskID).Return(task, nil)
	mockUow.GetTaskRepoMock().On("UpdateStatusIfActive", ctx, task.TaskID, domain.TaskStatusCancelled).
		Return(true, nil)

	mockStorage.On("ObjectExists", ctx, task.BucketName, domain.PartObjectKey(task.ObjectKey, 1)).
		Return(false, assert.AnError)
	mockStorage.On("ObjectExists", ctx, task.BucketName, domain.PartObjectKey(task.ObjectKey, 2)).
		Return(true, nil)
	mockStorage.On("DeleteObject", ctx, task.BucketName, domain.PartObjectKey(task.ObjectKey, 2)).
		Return(assert.AnError)

	// Act
	err := service.CancelUploadTask(ctx, task.TaskID, 1)

	// Assert - the task is cancelled even though every part cleanup failed
	assert.NoError(t, err)
	mockUow.GetTaskRepoMock().AssertCalled(t, "UpdateStatusIfActive", ctx, task.TaskID, domain.TaskStatusCancelled)
}

func TestUploadService_CancelUploadTask_TerminalTask(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := upload.NewUploadService(mockUow, mockStorage, defaultCfg, discardLogger)

	task := activeTask(1, 2)
	task.Status = domain.TaskStatusCompleted
	mockUow.GetTaskRepoMock().On("FindByTaskID", ctx, task.TaskID).Return(task, nil)
	mockUow.GetTaskRepoMock().On("UpdateStatusIfActive", ctx, task.TaskID, domain.TaskStatusCancelled).
		Return(false, nil)

	// Act
	err := service.CancelUploadTask(ctx, task.TaskID, 1)

	// Assert - no cleanup runs on a finalized task
	assert.ErrorIs(t, err, domain.ErrInvalidTaskState)
	mockStorage.AssertNotCalled(t, "ObjectExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_CancelUploadTask_RepeatCancelIsIdempotent(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := upload.NewUploadService(mockUow, mockStorage, defaultCfg, discardLogger)

	task := activeTask(1, 2)
	task.Status = domain.TaskStatusCancelled
	mockUow.GetTaskRepoMock().On("FindByTaskID", ctx, task.TaskID).Return(task, nil)

	// Act
	err := service.CancelUploadTask(ctx, task.TaskID, 1)

	// Assert - cancelling twice succeeds without touching task or store again
	assert.NoError(t, err)
	mockUow.GetTaskRepoMock().AssertNotCalled(t, "UpdateStatusIfActive", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertNotCalled(t, "ObjectExists", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadService_CancelUploadTask_WrongOwner(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockUow := repository.NewMockUnitOfWork()
	mockStorage := storage.NewMockStorage()
	service := upload.NewUploadService(mockUow, mockStorage, defaultCfg, discardLogger)

	task := activeTask(1, 2)
	mockUow.GetTaskRepoMock().On("FindByTaskID", ctx, task.TaskID).Return(task, nil)

	// Act
	err := service.CancelUploadTask(ctx, task.TaskID, 42)

	// Assert
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	mockUow.GetTaskRepoMock().AssertNotCalled(t, "UpdateStatusIfActive", mock.Anything, mock.Anything, mock.Anything)
}
