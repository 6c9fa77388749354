package file

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// UploadFile handles the non chunked path: dedup by content hash first, then
// either a direct single shot upload or a "use chunked upload" indicator for
// files above the threshold.
func (s *fileService) UploadFile(ctx context.Context, req domain.FileUploadRequest, content io.Reader, userID int64) (*domain.FileUploadResult, error) {

	fileType, ext, err := s.validateFile(req.FileName, req.FileSize)
	if err != nil {
		return nil, err
	}

	if s.uploadCfg.QuickUploadEnabled {
		result, quickErr := s.tryQuickUpload(ctx, req, fileType, ext, userID)
		if quickErr != nil {
			return nil, quickErr
		}
		if result != nil {
			return result, nil
		}
	}

	if req.FileSize >= s.uploadCfg.ChunkThreshold {
		return &domain.FileUploadResult{
			FileName:        req.FileName,
			FileSize:        req.FileSize,
			FileType:        fileType,
			NeedChunkUpload: true,
			Message:         "file too large, use chunked upload",
		}, nil
	}

	now := time.Now()
	fileID := uuid.New()
	bucket := s.storage.BucketForFileType(fileType)
	objectKey := fmt.Sprintf("%s/%s/%s.%s", fileType, now.Format("2006/01/02"), fileID, ext)

	if putErr := s.storage.PutObject(ctx, bucket, objectKey, content, req.FileSize, req.MimeType); putErr != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, putErr)
	}

	downloadURL, urlErr := s.storage.PresignedDownloadURL(ctx, bucket, objectKey, s.uploadCfg.DownloadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}

	expiresAt := now.Add(s.uploadCfg.DownloadURLTTL)
	record := domain.FileRecord{
		FileID:       fileID,
		FileName:     req.FileName,
		FileSize:     req.FileSize,
		FileType:     fileType,
		MimeType:     req.MimeType,
		FileExt:      ext,
		BucketName:   bucket,
		ObjectKey:    objectKey,
		FileMD5:      req.FileMD5,
		DownloadURL:  downloadURL,
		URLExpiresAt: expiresAt,
		Status:       domain.FileStatusActive,
		UserID:       userID,
	}

	txErr := s.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		return uow.FileRepo().Create(ctx, record)
	})
	if txErr != nil {
		return nil, txErr
	}

	return &domain.FileUploadResult{
		FileID:       fileID,
		FileName:     req.FileName,
		FileSize:     req.FileSize,
		FileType:     fileType,
		DownloadURL:  downloadURL,
		URLExpiresAt: &expiresAt,
		Message:      "upload succeeded",
	}, nil
}
