package domain

import "errors"

// ErrConcurrencyLimitExceeded is an error thrown when a user already has the maximum number of active tasks
var ErrConcurrencyLimitExceeded = errors.New("too many concurrent uploads")

// ErrFileTypeRejected is an error thrown when the file type is not on any allow list
var ErrFileTypeRejected = errors.New("file type not allowed")

// ErrFileSizeExceeded is an error thrown when the file exceeds the per type size limit
var ErrFileSizeExceeded = errors.New("file size exceeds limit")

// ErrInvalidChunkCount is an error thrown when the declared chunk layout is inconsistent
var ErrInvalidChunkCount = errors.New("invalid chunk count")

// ErrTaskNotFound is an error thrown when the upload task does not exist
var ErrTaskNotFound = errors.New("upload task not found")

// ErrPermissionDenied is an error thrown when the caller does not own the task or file
var ErrPermissionDenied = errors.New("permission denied")

// ErrInvalidTaskState is an error thrown when the task is already in a terminal state
var ErrInvalidTaskState = errors.New("invalid task state")

// ErrIncompleteChunks is an error thrown when not all chunks are uploaded yet; the task stays active
var ErrIncompleteChunks = errors.New("chunk upload incomplete")

// ErrMergeFailed is an error thrown when the store side compose failed; the task is marked failed
var ErrMergeFailed = errors.New("chunk merge failed")

// ErrFileNotFound is an error thrown when a file record does not exist
var ErrFileNotFound = errors.New("file not found")

// ErrChunkNotFound is an error thrown when a chunk slot does not exist
var ErrChunkNotFound = errors.New("chunk not found")

// ErrUploadFailed is an error thrown when a direct upload to the store failed
var ErrUploadFailed = errors.New("file upload failed")
