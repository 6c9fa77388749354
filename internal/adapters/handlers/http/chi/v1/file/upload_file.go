package file

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// maxDirectUploadBytes caps the in-request upload body; larger files go
// through the presigned or chunked paths
const maxDirectUploadBytes = 64 << 20

func (h *HandlerV1) UploadFileV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxDirectUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	content, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file part", http.StatusBadRequest)
		return
	}
	defer content.Close()

	fileMD5 := r.FormValue("file_md5")
	if fileMD5 == "" {
		http.Error(w, "missing param", http.StatusBadRequest)
		return
	}

	fileSize := header.Size
	if raw := r.FormValue("file_size"); raw != "" {
		if parsed, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
			fileSize = parsed
		}
	}

	result, uploadErr := h.fileService.UploadFile(r.Context(), domain.FileUploadRequest{
		FileName: header.Filename,
		FileSize: fileSize,
		FileMD5:  fileMD5,
		MimeType: header.Header.Get("Content-Type"),
	}, content, userID)
	switch {
	case errors.Is(uploadErr, domain.ErrFileTypeRejected),
		errors.Is(uploadErr, domain.ErrFileSizeExceeded):
		http.Error(w, uploadErr.Error(), http.StatusBadRequest)
		return
	case uploadErr != nil:
		h.logger.Error("error uploading file", "error", uploadErr)
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
