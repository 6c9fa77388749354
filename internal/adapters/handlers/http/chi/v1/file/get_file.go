package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1FileResponse is one file record
type V1FileResponse struct {
	FileID        uuid.UUID `json:"file_id"`
	FileName      string    `json:"filename"`
	FileSize      int64     `json:"file_size"`
	FileType      string    `json:"file_type"`
	MimeType      string    `json:"mime_type"`
	DownloadURL   string    `json:"download_url"`
	URLExpiresAt  time.Time `json:"url_expires_at"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func toV1FileResponse(record *domain.FileRecord) V1FileResponse {
	return V1FileResponse{
		FileID:        record.FileID,
		FileName:      record.FileName,
		FileSize:      record.FileSize,
		FileType:      string(record.FileType),
		MimeType:      record.MimeType,
		DownloadURL:   record.DownloadURL,
		URLExpiresAt:  record.URLExpiresAt,
		DownloadCount: record.DownloadCount,
		CreatedAt:     record.CreatedAt,
	}
}

func (h *HandlerV1) GetFileV1(w http.ResponseWriter, r *http.Request) {

	fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	record, getErr := h.fileService.GetFile(r.Context(), fileID)
	switch {
	case errors.Is(getErr, domain.ErrFileNotFound):
		http.Error(w, getErr.Error(), http.StatusNotFound)
		return
	case getErr != nil:
		h.logger.Error("error fetching file", "file_id", fileID, "error", getErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(toV1FileResponse(record)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
