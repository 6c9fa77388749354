package file

import (
	"context"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// DeleteFile marks the record deleted. The physical object is never touched
// here: other records may share it after quick upload dedup, physical garbage
// collection belongs to an external housekeeping process.
func (s *fileService) DeleteFile(ctx context.Context, fileID uuid.UUID, userID int64) error {

	record, err := s.uow.FileRepo().FindByFileID(ctx, fileID)
	if err != nil {
		return err
	}
	if record.UserID != userID {
		return domain.ErrPermissionDenied
	}

	if err := s.uow.FileRepo().UpdateStatus(ctx, fileID, domain.FileStatusDeleted); err != nil {
		return err
	}

	s.logger.Info("file record deleted", "file_id", fileID, "object_key", record.ObjectKey)
	return nil
}

// ListFiles returns the caller's active records, newest first, optionally
// filtered by file category
func (s *fileService) ListFiles(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error) {
	return s.uow.FileRepo().ListByUser(ctx, userID, fileType)
}
