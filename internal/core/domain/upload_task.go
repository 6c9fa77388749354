package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the status of an upload task. Active is the only
// non-terminal state; every other state is final once entered.
type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusCancelled TaskStatus = "cancelled"
	TaskStatusFailed    TaskStatus = "failed"
)

// Terminal reports whether the status is final.
func (s TaskStatus) Terminal() bool {
	return s != TaskStatusActive
}

// Label returns the human readable status label exposed by the status endpoint.
func (s TaskStatus) Label() string {
	switch s {
	case TaskStatusActive:
		return "uploading"
	case TaskStatusCompleted:
		return "done"
	case TaskStatusCancelled:
		return "cancelled"
	case TaskStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadTask represents one chunked upload attempt
type UploadTask struct {
	TaskID         uuid.UUID
	UserID         int64
	FileMD5        string
	FileName       string
	FileSize       int64
	ChunkSize      int64
	TotalChunks    int
	MimeType       string
	BucketName     string
	ObjectKey      string
	UploadedChunks int
	Status         TaskStatus
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Progress returns the upload progress in percent, 0 when the task has no chunks.
func (t *UploadTask) Progress() float64 {
	if t.TotalChunks == 0 {
		return 0
	}
	return float64(t.UploadedChunks) / float64(t.TotalChunks) * 100
}

// TotalChunksFor computes the number of chunk slots for a file
func TotalChunksFor(fileSize, chunkSize int64) int {
	if chunkSize <= 0 {
		return 0
	}
	return int((fileSize + chunkSize - 1) / chunkSize)
}

// PartObjectKey returns the storage key of one chunk's part object.
// Part objects live next to the final object until they are composed.
func PartObjectKey(objectKey string, chunkNumber int) string {
	return fmt.Sprintf("%s.part%d", objectKey, chunkNumber)
}

// ChunkUploadRequest carries the client supplied metadata to initiate a chunked upload
type ChunkUploadRequest struct {
	FileName    string
	FileSize    int64
	ChunkSize   int64
	TotalChunks int
	FileMD5     string
	MimeType    string
}

// ChunkUploadURL is one presigned upload slot handed back to the client
type ChunkUploadURL struct {
	ChunkNumber int
	UploadURL   string
	ExpiresAt   time.Time
}

// ChunkUploadGrant is the result of initiating (or resuming) a chunked upload
type ChunkUploadGrant struct {
	TaskID      uuid.UUID
	FileName    string
	ChunkSize   int64
	TotalChunks int
	ChunkURLs   []ChunkUploadURL
	Existing    bool
}

// ChunkETag is one client reported (chunkNumber, etag) pair submitted at completion
type ChunkETag struct {
	ChunkNumber int
	ETag        string
}

// TaskProgress is the status report for one upload task
type TaskProgress struct {
	TaskID      uuid.UUID
	FileName    string
	Progress    float64
	StatusLabel string
}

// ChunkCleanupOutcome records the result of removing one part object during cancellation
type ChunkCleanupOutcome struct {
	ChunkNumber int
	Deleted     bool
	Err         error
}

// CleanupReport collects per part outcomes of a best effort cleanup pass
type CleanupReport struct {
	Outcomes []ChunkCleanupOutcome
}

// Failed returns the number of parts whose cleanup errored
func (r *CleanupReport) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Deleted returns the number of part objects actually removed
func (r *CleanupReport) Deleted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Deleted {
			n++
		}
	}
	return n
}
