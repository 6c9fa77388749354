package domain

import (
	"time"

	"github.com/google/uuid"
)

// FileStatus represents the status of a finalized file record
type FileStatus string

const (
	FileStatusActive  FileStatus = "active"
	FileStatusDeleted FileStatus = "deleted"
)

// FileType classifies a file into its storage category
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeDocument FileType = "document"
	FileTypeUnknown  FileType = "unknown"
)

// FileRecord represents a finalized, downloadable file.
// Several records may share one physical object (quick upload dedup);
// deleting a record never deletes the shared object.
type FileRecord struct {
	FileID        uuid.UUID
	FileName      string
	FileSize      int64
	FileType      FileType
	MimeType      string
	FileExt       string
	BucketName    string
	ObjectKey     string
	FileMD5       string
	DownloadURL   string
	URLExpiresAt  time.Time
	DownloadCount int64
	Status        FileStatus
	UserID        int64
	CreatedAt     time.Time
}

// FileUploadRequest carries the client supplied metadata for a non chunked upload
type FileUploadRequest struct {
	FileName string
	FileSize int64
	FileMD5  string
	MimeType string
}

// FileUploadResult is the three way outcome of the quick upload path:
// dedup hit, direct upload done, or defer to chunked upload.
type FileUploadResult struct {
	FileID          uuid.UUID
	FileName        string
	FileSize        int64
	FileType        FileType
	DownloadURL     string
	UploadURL       string
	URLExpiresAt    *time.Time
	QuickUpload     bool
	NeedChunkUpload bool
	Message         string
}
