package upload

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// MockUploadService is a mock implementation of UploadService
type MockUploadService struct {
	mock.Mock
}

// NewMockUploadService creates a new MockUploadService
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) InitChunkUpload(ctx context.Context, req domain.ChunkUploadRequest, userID int64) (*domain.ChunkUploadGrant, error) {
	args := m.Called(ctx, req, userID)
	return args.Get(0).(*domain.ChunkUploadGrant), args.Error(1)
}

func (m *MockUploadService) CompleteChunkUpload(ctx context.Context, taskID uuid.UUID, chunks []domain.ChunkETag, userID int64) (*domain.FileRecord, error) {
	args := m.Called(ctx, taskID, chunks, userID)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockUploadService) GetTaskStatus(ctx context.Context, taskID uuid.UUID, userID int64) (*domain.TaskProgress, error) {
	args := m.Called(ctx, taskID, userID)
	return args.Get(0).(*domain.TaskProgress), args.Error(1)
}

func (m *MockUploadService) CancelUploadTask(ctx context.Context, taskID uuid.UUID, userID int64) error {
	args := m.Called(ctx, taskID, userID)
	return args.Error(0)
}
