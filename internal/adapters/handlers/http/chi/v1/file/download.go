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

// V1DownloadURLResponse carries a freshly presigned download url
type V1DownloadURLResponse struct {
	FileID       uuid.UUID `json:"file_id"`
	FileName     string    `json:"filename"`
	DownloadURL  string    `json:"download_url"`
	URLExpiresAt time.Time `json:"url_expires_at"`
}

func (h *HandlerV1) GetDownloadURLV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	fileID, err := uuid.Parse(chi.URLParam(r, "fileID"))
	if err != nil {
		http.Error(w, "invalid file id", http.StatusBadRequest)
		return
	}

	record, getErr := h.fileService.GetDownloadURL(r.Context(), fileID, userID)
	switch {
	case errors.Is(getErr, domain.ErrFileNotFound):
		http.Error(w, getErr.Error(), http.StatusNotFound)
		return
	case getErr != nil:
		h.logger.Error("error generating download url", "file_id", fileID, "error", getErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1DownloadURLResponse{
			FileID:       record.FileID,
			FileName:     record.FileName,
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
