package upload

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1InitChunkUploadRequest is the request to initiate a chunked upload
type V1InitChunkUploadRequest struct {
	FileName    string `json:"filename"`
	FileSize    int64  `json:"file_size"`
	ChunkSize   int64  `json:"chunk_size"`
	TotalChunks int    `json:"total_chunks"`
	FileMD5     string `json:"file_md5"`
	MimeType    string `json:"mime_type"`
}

// V1ChunkUploadURL is one presigned chunk slot
type V1ChunkUploadURL struct {
	ChunkNumber int       `json:"chunk_number"`
	UploadURL   string    `json:"upload_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// V1InitChunkUploadResponse is the response to initiate a chunked upload
type V1InitChunkUploadResponse struct {
	TaskID      uuid.UUID          `json:"task_id"`
	FileName    string             `json:"filename"`
	ChunkSize   int64              `json:"chunk_size"`
	TotalChunks int                `json:"total_chunks"`
	ChunkURLs   []V1ChunkUploadURL `json:"chunk_urls"`
	Existing    bool               `json:"existing"`
}

func (h *HandlerV1) InitChunkUploadV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req V1InitChunkUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding init chunk upload request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FileName == "" || req.FileSize <= 0 || req.ChunkSize <= 0 || req.FileMD5 == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	grant, initErr := h.uploadService.InitChunkUpload(r.Context(), domain.ChunkUploadRequest{
		FileName:    req.FileName,
		FileSize:    req.FileSize,
		ChunkSize:   req.ChunkSize,
		TotalChunks: req.TotalChunks,
		FileMD5:     req.FileMD5,
		MimeType:    req.MimeType,
	}, userID)
	switch {
	case errors.Is(initErr, domain.ErrFileTypeRejected),
		errors.Is(initErr, domain.ErrFileSizeExceeded),
		errors.Is(initErr, domain.ErrInvalidChunkCount):
		h.logger.Error("invalid init chunk upload request", "error", initErr)
		http.Error(w, initErr.Error(), http.StatusBadRequest)
		return
	case errors.Is(initErr, domain.ErrConcurrencyLimitExceeded):
		http.Error(w, initErr.Error(), http.StatusTooManyRequests)
		return
	case initErr != nil:
		h.logger.Error("error initiating chunk upload", "error", initErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		urls := make([]V1ChunkUploadURL, 0, len(grant.ChunkURLs))
		for _, u := range grant.ChunkURLs {
			urls = append(urls, V1ChunkUploadURL{
				ChunkNumber: u.ChunkNumber,
				UploadURL:   u.UploadURL,
				ExpiresAt:   u.ExpiresAt,
			})
		}

		resp := V1InitChunkUploadResponse{
			TaskID:      grant.TaskID,
			FileName:    grant.FileName,
			ChunkSize:   grant.ChunkSize,
			TotalChunks: grant.TotalChunks,
			ChunkURLs:   urls,
			Existing:    grant.Existing,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
