package file

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

// HandlerV1 is the handler for v1 file routes
type HandlerV1 struct {
	fileService port.FileService
	logger      *slog.Logger
}

// NewFileHandlerV1 creates HandlerV1
func NewFileHandlerV1(service port.FileService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		fileService: service,
		logger:      logger,
	}
}

// Routes exposes handler routes
func (h *HandlerV1) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/upload", h.UploadFileV1)
	router.Post("/upload-url", h.RequestUploadURLV1)
	router.Get("/", h.ListFilesV1)
	router.Get("/{fileID}", h.GetFileV1)
	router.Get("/{fileID}/download", h.GetDownloadURLV1)
	router.Delete("/{fileID}", h.DeleteFileV1)

	return router
}

// V1FileUploadResponse is the three way outcome of an upload request
type V1FileUploadResponse struct {
	FileID          uuid.UUID  `json:"file_id"`
	FileName        string     `json:"filename"`
	FileSize        int64      `json:"file_size"`
	FileType        string     `json:"file_type"`
	DownloadURL     string     `json:"download_url,omitempty"`
	UploadURL       string     `json:"upload_url,omitempty"`
	URLExpiresAt    *time.Time `json:"url_expires_at,omitempty"`
	QuickUpload     bool       `json:"quick_upload"`
	NeedChunkUpload bool       `json:"need_chunk_upload"`
	Message         string     `json:"message"`
}

func toV1FileUploadResponse(result *domain.FileUploadResult) V1FileUploadResponse {
	return V1FileUploadResponse{
		FileID:          result.FileID,
		FileName:        result.FileName,
		FileSize:        result.FileSize,
		FileType:        string(result.FileType),
		DownloadURL:     result.DownloadURL,
		UploadURL:       result.UploadURL,
		URLExpiresAt:    result.URLExpiresAt,
		QuickUpload:     result.QuickUpload,
		NeedChunkUpload: result.NeedChunkUpload,
		Message:         result.Message,
	}
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
