package port

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// UploadService is an interface to define the chunked upload engine
type UploadService interface {
	InitChunkUpload(ctx context.Context, req domain.ChunkUploadRequest, userID int64) (*domain.ChunkUploadGrant, error)
	CompleteChunkUpload(ctx context.Context, taskID uuid.UUID, chunks []domain.ChunkETag, userID int64) (*domain.FileRecord, error)
	GetTaskStatus(ctx context.Context, taskID uuid.UUID, userID int64) (*domain.TaskProgress, error)
	CancelUploadTask(ctx context.Context, taskID uuid.UUID, userID int64) error
}

// FileService is an interface to define the quick upload path and file record management
type FileService interface {
	UploadFile(ctx context.Context, req domain.FileUploadRequest, content io.Reader, userID int64) (*domain.FileUploadResult, error)
	RequestUploadURL(ctx context.Context, req domain.FileUploadRequest, userID int64) (*domain.FileUploadResult, error)
	GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error)
	GetDownloadURL(ctx context.Context, fileID uuid.UUID, userID int64) (*domain.FileRecord, error)
	DeleteFile(ctx context.Context, fileID uuid.UUID, userID int64) error
	ListFiles(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error)
}
