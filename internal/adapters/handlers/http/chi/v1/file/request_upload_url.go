package file

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1RequestUploadURLRequest asks for a presigned upload slot without sending content
type V1RequestUploadURLRequest struct {
	FileName string `json:"filename"`
	FileSize int64  `json:"file_size"`
	FileMD5  string `json:"file_md5"`
	MimeType string `json:"mime_type"`
}

func (h *HandlerV1) RequestUploadURLV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var req V1RequestUploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("error decoding upload url request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.FileName == "" || req.FileSize <= 0 || req.FileMD5 == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	result, requestErr := h.fileService.RequestUploadURL(r.Context(), domain.FileUploadRequest{
		FileName: req.FileName,
		FileSize: req.FileSize,
		FileMD5:  req.FileMD5,
		MimeType: req.MimeType,
	}, userID)
	switch {
	case errors.Is(requestErr, domain.ErrFileTypeRejected),
		errors.Is(requestErr, domain.ErrFileSizeExceeded):
		http.Error(w, requestErr.Error(), http.StatusBadRequest)
		return
	case requestErr != nil:
		h.logger.Error("error requesting upload url", "error", requestErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toV1FileUploadResponse(result)); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
