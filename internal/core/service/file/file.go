package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type fileService struct {
	uow       port.UnitOfWork
	storage   port.ObjectStorage
	uploadCfg config.UploadConfig
	logger    *slog.Logger
}

// NewFileService creates a new file service covering the quick upload path
// and file record management
func NewFileService(uow port.UnitOfWork, storage port.ObjectStorage, cfg config.UploadConfig, logger *slog.Logger) port.FileService {
	return &fileService{uow: uow, storage: storage, uploadCfg: cfg, logger: logger}
}

func (s *fileService) validateFile(fileName string, fileSize int64) (domain.FileType, string, error) {
	fileType, ext := s.uploadCfg.Classify(fileName)
	if fileType == domain.FileTypeUnknown {
		return domain.FileTypeUnknown, "", fmt.Errorf("%w: .%s", domain.ErrFileTypeRejected, ext)
	}
	if max := s.uploadCfg.PolicyFor(fileType).MaxSize; fileSize > max {
		return domain.FileTypeUnknown, "", fmt.Errorf("%w: %d > %d", domain.ErrFileSizeExceeded, fileSize, max)
	}
	return fileType, ext, nil
}

// tryQuickUpload looks for an active record with the same content hash and, on
// a hit, synthesizes a new record sharing the object coordinates. Zero bytes
// are transferred.
func (s *fileService) tryQuickUpload(ctx context.Context, req domain.FileUploadRequest, fileType domain.FileType, ext string, userID int64) (*domain.FileUploadResult, error) {
	existing, err := s.uow.FileRepo().FindActiveByFileMD5(ctx, req.FileMD5)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return nil, nil
		}
		return nil, err
	}

	downloadURL, urlErr := s.storage.PresignedDownloadURL(ctx, existing.BucketName, existing.ObjectKey, s.uploadCfg.DownloadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}

	expiresAt := time.Now().Add(s.uploadCfg.DownloadURLTTL)
	record := domain.FileRecord{
		FileID:       uuid.New(),
		FileName:     req.FileName,
		FileSize:     req.FileSize,
		FileType:     fileType,
		MimeType:     req.MimeType,
		FileExt:      ext,
		BucketName:   existing.BucketName,
		ObjectKey:    existing.ObjectKey,
		FileMD5:      req.FileMD5,
		DownloadURL:  downloadURL,
		URLExpiresAt: expiresAt,
		Status:       domain.FileStatusActive,
		UserID:       userID,
	}
	if createErr := s.uow.FileRepo().Create(ctx, record); createErr != nil {
		return nil, createErr
	}

	s.logger.Info("quick upload hit",
		"file_id", record.FileID,
		"file_md5", req.FileMD5,
		"shared_object", existing.ObjectKey)

	return &domain.FileUploadResult{
		FileID:       record.FileID,
		FileName:     record.FileName,
		FileSize:     record.FileSize,
		FileType:     record.FileType,
		DownloadURL:  downloadURL,
		URLExpiresAt: &expiresAt,
		QuickUpload:  true,
		Message:      "quick upload succeeded",
	}, nil
}
