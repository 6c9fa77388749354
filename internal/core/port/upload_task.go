package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// UploadTaskRepository is an interface to interact with upload task storage
type UploadTaskRepository interface {
	Create(ctx context.Context, task domain.UploadTask) error
	FindByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.UploadTask, error)
	FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.UploadTask, error)
	FindActiveByObjectKey(ctx context.Context, bucket, objectKey string) (*domain.UploadTask, error)
	CountActiveByUser(ctx context.Context, userID int64) (int, error)
	// AcquireUserLock takes a transaction scoped advisory lock on the user so
	// the count-then-insert concurrency check cannot race. Only valid inside a
	// unit of work transaction.
	AcquireUserLock(ctx context.Context, userID int64) error
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) error
	// UpdateStatusIfActive transitions the task out of Active with a
	// compare-and-set; it reports whether this call won the transition.
	UpdateStatusIfActive(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) (bool, error)
	// RefreshProgress recomputes uploaded_chunks from the chunk table
	RefreshProgress(ctx context.Context, taskID uuid.UUID) error
	FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadTask, error)
}

// ChunkRepository is an interface to interact with chunk slot storage
type ChunkRepository interface {
	CreateBatch(ctx context.Context, chunks []domain.ChunkRecord) error
	FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]domain.ChunkRecord, error)
	CountByTaskIDAndStatus(ctx context.Context, taskID uuid.UUID, status domain.ChunkStatus) (int, error)
	MarkUploaded(ctx context.Context, taskID uuid.UUID, chunkNumber int, etag string) error
	MarkUploading(ctx context.Context, taskID uuid.UUID, chunkNumber int) error
}

// FileRecordRepository is an interface to interact with finalized file records
type FileRecordRepository interface {
	Create(ctx context.Context, record domain.FileRecord) error
	FindByFileID(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error)
	// FindActiveByFileMD5 returns the newest active record with the given
	// content hash, or domain.ErrFileNotFound.
	FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.FileRecord, error)
	UpdateDownloadURL(ctx context.Context, fileID uuid.UUID, url string, expiresAt time.Time) error
	IncrementDownloadCount(ctx context.Context, fileID uuid.UUID) error
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	ListByUser(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error)
	// SumFileSizeByUser totals the size of the user's active records
	SumFileSizeByUser(ctx context.Context, userID int64) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID int64, status domain.FileStatus) (int, error)
}

// UnitOfWork is a pattern that allows to run transactions across different repositories
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	TaskRepo() UploadTaskRepository
	ChunkRepo() ChunkRepository
	FileRepo() FileRecordRepository
}
