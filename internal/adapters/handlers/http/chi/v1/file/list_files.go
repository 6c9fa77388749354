package file

import (
	"encoding/json"
	"net/http"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1ListFilesResponse is the file listing of one user
type V1ListFilesResponse struct {
	Files []V1FileResponse `json:"files"`
}

func (h *HandlerV1) ListFilesV1(w http.ResponseWriter, r *http.Request) {

	userID, err := userIDFromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var fileType *domain.FileType
	if raw := r.URL.Query().Get("type"); raw != "" {
		ft := domain.FileType(raw)
		switch ft {
		case domain.FileTypeImage, domain.FileTypeVideo, domain.FileTypeAudio, domain.FileTypeDocument:
			fileType = &ft
		default:
			http.Error(w, "invalid file type", http.StatusBadRequest)
			return
		}
	}

	records, listErr := h.fileService.ListFiles(r.Context(), userID, fileType)
	if listErr != nil {
		h.logger.Error("error listing files", "user_id", userID, "error", listErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	}

	files := make([]V1FileResponse, 0, len(records))
	for i := range records {
		files = append(files, toV1FileResponse(&records[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(V1ListFilesResponse{Files: files}); err != nil {
		h.logger.Error("error encoding response", "error", err)
	}
}
