package upload

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

func (h *HandlerV1) CancelUploadTaskV1(w http.ResponseWriter, r *http.Request) {

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

	cancelErr := h.uploadService.CancelUploadTask(r.Context(), taskID, userID)
	switch {
	case errors.Is(cancelErr, domain.ErrTaskNotFound):
		http.Error(w, cancelErr.Error(), http.StatusNotFound)
		return
	case errors.Is(cancelErr, domain.ErrPermissionDenied):
		http.Error(w, cancelErr.Error(), http.StatusForbidden)
		return
	case errors.Is(cancelErr, domain.ErrInvalidTaskState):
		http.Error(w, cancelErr.Error(), http.StatusConflict)
		return
	case cancelErr != nil:
		h.logger.Error("error cancelling upload task", "task_id", taskID, "error", cancelErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		w.WriteHeader(http.StatusNoContent)
		return
	}
}
