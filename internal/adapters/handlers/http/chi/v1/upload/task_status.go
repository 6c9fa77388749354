package upload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

// V1TaskStatusResponse is the status report of one upload task
type V1TaskStatusResponse struct {
	TaskID   uuid.UUID `json:"task_id"`
	FileName string    `json:"filename"`
	Progress float64   `json:"progress"`
	Status   string    `json:"status"`
}

func (h *HandlerV1) GetTaskStatusV1(w http.ResponseWriter, r *http.Request) {

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

	progress, statusErr := h.uploadService.GetTaskStatus(r.Context(), taskID, userID)
	switch {
	case errors.Is(statusErr, domain.ErrTaskNotFound):
		http.Error(w, statusErr.Error(), http.StatusNotFound)
		return
	case errors.Is(statusErr, domain.ErrPermissionDenied):
		http.Error(w, statusErr.Error(), http.StatusForbidden)
		return
	case statusErr != nil:
		h.logger.Error("error fetching task status", "task_id", taskID, "error", statusErr)
		http.Error(w, "internal server error", http.StatusServiceUnavailable)
		return
	default:
		resp := V1TaskStatusResponse{
			TaskID:   progress.TaskID,
			FileName: progress.FileName,
			Progress: progress.Progress,
			Status:   progress.StatusLabel,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			h.logger.Error("error encoding response", "error", err)
		}
		return
	}
}
