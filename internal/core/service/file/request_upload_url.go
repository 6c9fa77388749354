package file

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// RequestUploadURL is the presigned variant of UploadFile: the same dedup and
// threshold branches, but on the direct path the client uploads straight to
// the store with a time limited URL instead of proxying bytes through here.
func (s *fileService) RequestUploadURL(ctx context.Context, req domain.FileUploadRequest, userID int64) (*domain.FileUploadResult, error) {

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

	uploadURL, urlErr := s.storage.PresignedUploadURL(ctx, bucket, objectKey, s.uploadCfg.UploadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}

	expiresAt := now.Add(s.uploadCfg.UploadURLTTL)
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
		UploadURL:    uploadURL,
		URLExpiresAt: &expiresAt,
		Message:      "upload directly with the provided URL",
	}, nil
}
