package storeevent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

const partKeyMarker = ".part"

type storeEventService struct {
	uow    port.UnitOfWork
	logger *slog.Logger
}

// NewStoreEventService creates a handler for store bucket notifications.
// It turns "part object created" events into chunk progress updates.
func NewStoreEventService(uow port.UnitOfWork, logger *slog.Logger) port.MessageService {
	return &storeEventService{uow: uow, logger: logger}
}

// HandleMessage parses a store notification and records chunk progress for
// every part object it announces. Events for objects that are not part
// objects of an active task are ignored.
func (s *storeEventService) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.MinIOEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("failed to unmarshal store event: %w", err)
	}

	for _, record := range event.Records {
		if !strings.HasPrefix(record.EventName, "s3:ObjectCreated") {
			continue
		}

		// object keys arrive url-encoded in bucket notifications
		rawKey, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			s.logger.Warn("skipping event with malformed object key", "key", record.S3.Object.Key)
			continue
		}

		notif, ok := parsePartKey(rawKey)
		if !ok {
			continue
		}
		notif.BucketName = record.S3.Bucket.Name
		notif.ObjectSize = record.S3.Object.Size
		notif.ObjectETag = record.S3.Object.ETag

		if err := s.recordPartUpload(ctx, notif); err != nil {
			s.logger.Error("failed to record part upload",
				"bucket", notif.BucketName,
				"object_key", notif.ObjectKey,
				"chunk_number", notif.ChunkNumber,
				"error", err)
		}
	}

	return nil
}

func (s *storeEventService) recordPartUpload(ctx context.Context, notif domain.PartUploadNotification) error {
	task, err := s.uow.TaskRepo().FindActiveByObjectKey(ctx, notif.BucketName, notif.ObjectKey)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			// task finished or cancelled before the event arrived
			return nil
		}
		return err
	}

	if notif.ChunkNumber < 1 || notif.ChunkNumber > task.TotalChunks {
		s.logger.Warn("part event outside task chunk range",
			"task_id", task.TaskID, "chunk_number", notif.ChunkNumber)
		return nil
	}

	return s.uow.Execute(ctx, func(repos port.UnitOfWork) error {
		if err := repos.ChunkRepo().MarkUploading(ctx, task.TaskID, notif.ChunkNumber); err != nil {
			return err
		}
		return repos.TaskRepo().RefreshProgress(ctx, task.TaskID)
	})
}

// parsePartKey splits "<objectKey>.part<N>" into its base key and part number.
func parsePartKey(key string) (domain.PartUploadNotification, bool) {
	idx := strings.LastIndex(key, partKeyMarker)
	if idx < 0 {
		return domain.PartUploadNotification{}, false
	}

	n, err := strconv.Atoi(key[idx+len(partKeyMarker):])
	if err != nil || n < 1 {
		return domain.PartUploadNotification{}, false
	}

	return domain.PartUploadNotification{
		ObjectKey:   key[:idx],
		ChunkNumber: n,
	}, true
}
