package upload

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// HandlerV1 is the handler for v1 chunked upload routes
type HandlerV1 struct {
	uploadService port.UploadService
	logger        *slog.Logger
}

// NewUploadHandlerV1 creates HandlerV1
func NewUploadHandlerV1(service port.UploadService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		uploadService: service,
		logger:        logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/chunk/init", h.InitChunkUploadV1)
	router.Post("/chunk/{taskID}/complete", h.CompleteChunkUploadV1)
	router.Get("/task/{taskID}", h.GetTaskStatusV1)
	router.Delete("/task/{taskID}", h.CancelUploadTaskV1)

	return router
}

var errMissingUserID = errors.New("missing or invalid X-User-ID header")

// userIDFromRequest reads the calling user from the X-User-ID header
func userIDFromRequest(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, errMissingUserID
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errMissingUserID
	}
	return userID, nil
}
