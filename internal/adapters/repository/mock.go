package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type MockUploadTaskRepository struct {
	mock.Mock
}

func NewMockUploadTaskRepository() *MockUploadTaskRepository {
	return &MockUploadTaskRepository{}
}

func (m *MockUploadTaskRepository) Create(ctx context.Context, task domain.UploadTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockUploadTaskRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.UploadTask, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).(*domain.UploadTask), args.Error(1)
}

func (m *MockUploadTaskRepository) FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.UploadTask, error) {
	args := m.Called(ctx, fileMD5)
	return args.Get(0).(*domain.UploadTask), args.Error(1)
}

func (m *MockUploadTaskRepository) FindActiveByObjectKey(ctx context.Context, bucket, objectKey string) (*domain.UploadTask, error) {
	args := m.Called(ctx, bucket, objectKey)
	return args.Get(0).(*domain.UploadTask), args.Error(1)
}

func (m *MockUploadTaskRepository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockUploadTaskRepository) AcquireUserLock(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUploadTaskRepository) UpdateStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) error {
	args := m.Called(ctx, taskID, status)
	return args.Error(0)
}

func (m *MockUploadTaskRepository) UpdateStatusIfActive(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) (bool, error) {
	args := m.Called(ctx, taskID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockUploadTaskRepository) RefreshProgress(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockUploadTaskRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadTask, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.UploadTask), args.Error(1)
}

type MockChunkRepository struct {
	mock.Mock
}

func NewMockChunkRepository() *MockChunkRepository {
	return &MockChunkRepository{}
}

func (m *MockChunkRepository) CreateBatch(ctx context.Context, chunks []domain.ChunkRecord) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockChunkRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]domain.ChunkRecord, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]domain.ChunkRecord), args.Error(1)
}

func (m *MockChunkRepository) CountByTaskIDAndStatus(ctx context.Context, taskID uuid.UUID, status domain.ChunkStatus) (int, error) {
	args := m.Called(ctx, taskID, status)
	return args.Int(0), args.Error(1)
}

func (m *MockChunkRepository) MarkUploaded(ctx context.Context, taskID uuid.UUID, chunkNumber int, etag string) error {
	args := m.Called(ctx, taskID, chunkNumber, etag)
	return args.Error(0)
}

func (m *MockChunkRepository) MarkUploading(ctx context.Context, taskID uuid.UUID, chunkNumber int) error {
	args := m.Called(ctx, taskID, chunkNumber)
	return args.Error(0)
}

type MockFileRecordRepository struct {
	mock.Mock
}

func NewMockFileRecordRepository() *MockFileRecordRepository {
	return &MockFileRecordRepository{}
}

func (m *MockFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockFileRecordRepository) FindByFileID(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {
	args := m.Called(ctx, fileID)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileRecordRepository) FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.FileRecord, error) {
	args := m.Called(ctx, fileMD5)
	return args.Get(0).(*domain.FileRecord), args.Error(1)
}

func (m *MockFileRecordRepository) UpdateDownloadURL(ctx context.Context, fileID uuid.UUID, url string, expiresAt time.Time) error {
	args := m.Called(ctx, fileID, url, expiresAt)
	return args.Error(0)
}

func (m *MockFileRecordRepository) IncrementDownloadCount(ctx context.Context, fileID uuid.UUID) error {
	args := m.Called(ctx, fileID)
	return args.Error(0)
}

func (m *MockFileRecordRepository) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error {
	args := m.Called(ctx, fileID, status)
	return args.Error(0)
}

func (m *MockFileRecordRepository) ListByUser(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error) {
	args := m.Called(ctx, userID, fileType)
	return args.Get(0).([]domain.FileRecord), args.Error(1)
}

func (m *MockFileRecordRepository) SumFileSizeByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFileRecordRepository) CountByUserAndStatus(ctx context.Context, userID int64, status domain.FileStatus) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

type MockUnitOfWork struct {
	mock.Mock
	taskRepo  *MockUploadTaskRepository
	chunkRepo *MockChunkRepository
	fileRepo  *MockFileRecordRepository
}

func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		taskRepo:  &MockUploadTaskRepository{},
		chunkRepo: &MockChunkRepository{},
		fileRepo:  &MockFileRecordRepository{},
	}
}

func (m *MockUnitOfWork) TaskRepo() port.UploadTaskRepository {
	return m.taskRepo
}

func (m *MockUnitOfWork) ChunkRepo() port.ChunkRepository {
	return m.chunkRepo
}

func (m *MockUnitOfWork) FileRepo() port.FileRecordRepository {
	return m.fileRepo
}

func (m *MockUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	args := m.Called(ctx, fn)

	if err := fn(m); err != nil {
		return err
	}

	return args.Error(0)
}

func (m *MockUnitOfWork) GetTaskRepoMock() *MockUploadTaskRepository {
	return m.taskRepo
}

func (m *MockUnitOfWork) GetChunkRepoMock() *MockChunkRepository {
	return m.chunkRepo
}

func (m *MockUnitOfWork) GetFileRepoMock() *MockFileRecordRepository {
	return m.fileRepo
}
