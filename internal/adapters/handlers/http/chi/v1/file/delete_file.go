package file

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

func (h *HandlerV1) DeleteFileV1(w http.ResponseWriter, r *http.Request) {

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

	deleteErr := h.fileService.DeleteFile(r.Context(), fileID, userID)
	switch {
	case errors.Is(deleteErr, domain.ErrFileNotFound):
		http.Error(w, deleteErr.Error(), http.StatusNotFound)
		return
	case errors.Is(deleteErr, domain.ErrPermissionDenied):
		http.Error(w, deleteErr.Error(), http.StatusForbidden)
		return
	case deleteErr != nil:
		h.logger.Error("error deleting file", "file_id", fileID, "error", deleteErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
