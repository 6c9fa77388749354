package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1ChunkETag is one client reported chunk etag
type V1ChunkETag struct {
	ChunkNumber int    `json:"chunk_number"`
	ETag        string `json:"etag"`
}

// V1CompleteChunkUploadRequest is the request to finalize a chunked upload
type V1CompleteChunkUploadRequest struct {
	Chunks []V1ChunkETag `json:"chunks"`
}

// V1CompleteChunkUploadResponse is the response to finalize a chunked upload
type V1CompleteChunkUploadResponse struct {
	FileID       uuid.UUID `json:"file_id"`
	FileName     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	DownloadURL  string    `json:"download_url"`
	URLExpiresAt time.Time `json:"url_expires_at"`
}

func (h *HandlerV1) CompleteChunkUploadV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	taskID, err := uuid.Parse(chi.URLParam(r, "taskID"))
	if err != nil {
		http.Error(w, "invalid task id", http.StatusBadRequest)
		return
	}

	var req V1CompleteChunkUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding complete chunk upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(req.Chunks) == 0 {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	chunks := make([]domain.ChunkETag, 0, len(req.Chunks))
	for _, c := range req.Chunks {
		chunks = append(chunks, domain.ChunkETag{ChunkNumber: c.ChunkNumber, ETag: c.ETag})
	}

	record, completeErr := h.uploadService.CompleteChunkUpload(r.Context(), taskID, chunks, userID)
	switch {
	case errors.Is(completeErr, domain.ErrTaskNotFound):
		http.Error(w, completeErr.Error(), http.StatusNotFound)
		return
	case errors.Is(completeErr, domain.ErrPermissionDenied):
		http.Error(w, completeErr.Error(), http.StatusForbidden)
		return
	case errors.Is(completeErr, domain.ErrInvalidChunkCount):
		http.Error(w, completeErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(completeErr, domain.ErrInvalidTaskState),
		errors.Is(completeErr, domain.ErrIncompleteChunks):
		http.Error(w, completeErr.Error(), http.StatusConflict)
		return
	case completeErr != nil:
		h.logger.Error("error completing chunk upload", "task_id", taskID, "error", completeErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1CompleteChunkUploadResponse{
			FileID:       record.FileID,
			FileName:     record.FileName,
			FileSize:     record.FileSize,
			DownloadURL:  record.DownloadURL,
			URLExpiresAt: record.URLExpiresAt,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
