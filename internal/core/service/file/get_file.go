package file

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// GetFile returns one file record, regenerating the download URL when the
// stored one has expired
func (s *fileService) GetFile(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {

	record, err := s.uow.FileRepo().FindByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if record.URLExpiresAt.After(time.Now()) && record.DownloadURL != "" {
		return record, nil
	}

	url, urlErr := s.storage.PresignedDownloadURL(ctx, record.BucketName, record.ObjectKey, s.uploadCfg.DownloadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}
	expiresAt := time.Now().Add(s.uploadCfg.DownloadURLTTL)

	if updateErr := s.uow.FileRepo().UpdateDownloadURL(ctx, fileID, url, expiresAt); updateErr != nil {
		return nil, updateErr
	}

	record.DownloadURL = url
	record.URLExpiresAt = expiresAt
	return record, nil
}

// GetDownloadURL issues a fresh download URL and counts the download
func (s *fileService) GetDownloadURL(ctx context.Context, fileID uuid.UUID, userID int64) (*domain.FileRecord, error) {

	record, err := s.uow.FileRepo().FindByFileID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	url, urlErr := s.storage.PresignedDownloadURL(ctx, record.BucketName, record.ObjectKey, s.uploadCfg.DownloadURLTTL)
	if urlErr != nil {
		return nil, urlErr
	}
	expiresAt := time.Now().Add(s.uploadCfg.DownloadURLTTL)

	if updateErr := s.uow.FileRepo().UpdateDownloadURL(ctx, fileID, url, expiresAt); updateErr != nil {
		return nil, updateErr
	}
	if countErr := s.uow.FileRepo().IncrementDownloadCount(ctx, fileID); countErr != nil {
		s.logger.Warn("failed to count download", "file_id", fileID, "error", countErr)
	}

	record.DownloadURL = url
	record.URLExpiresAt = expiresAt
	record.DownloadCount++
	return record, nil
}
