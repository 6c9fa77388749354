package file

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// MockFileService is a mock implementation of FileService
type MockFileService struct {
	mock.Mock
}

// NewMockFileService creates a new MockFileService
func NewMockFileService() *MockFileService {
	return &MockFileService{}
}

func (m *MockFileService) UploadFile(ctx context.Context, req domain.FileUploadRequest, content io.Reader, userID int64) (*domain.FileUploadResult, error) {
	args := m.Called(ctx, req, content, userID)
	return args.Get(0).(*domain.FileUploadResult), args.Error(1)
}

func (m *MockFileService) RequestUploadURL(ctx context.Context, req domain.FileUploadRequest, userID int64) (*domain.FileUploadResult, error) {
	args := m.Called(ctx, req, userID)
	return args.Get(0).(*domain.FileUploadResult), args.Error(1)
}

func (m *MockFileService) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, fileID)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID, userID int64) (*domain.FileRecord, error) {
	args := m.Called(ctx, fileID, userID)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileService) DeleteFile(ctx context.Context, fileID uuid.UUID, userID int64) error {
	args := m.Called(ctx, fileID, userID)
	return args.Error(0)
}

func (m *MockFileService) ListFiles(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error) {
	args := m.Called(ctx, userID, fileType)
	return args.Get(0).([]domain.FileRecord), args.Error(1)
}
