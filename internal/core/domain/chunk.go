package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChunkStatus represents the status of one chunk slot.
// Uploaded is only ever set by the completion flow; the event consumer may
// advance Pending to Uploading when the part object lands in the store.
type ChunkStatus string

const (
	ChunkStatusPending   ChunkStatus = "pending"
	ChunkStatusUploading ChunkStatus = "uploading"
	ChunkStatusUploaded  ChunkStatus = "uploaded"
)

// ChunkRecord represents one chunk slot of an upload task
type ChunkRecord struct {
	TaskID       uuid.UUID
	ChunkNumber  int
	UploadURL    string
	URLExpiresAt time.Time
	Status       ChunkStatus
	ETag         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
