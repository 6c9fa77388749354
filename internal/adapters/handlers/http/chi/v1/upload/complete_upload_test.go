package upload_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi"
	upload2 "github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi/v1/upload"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/upload"
)

func TestCompleteChunkUploadV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	body := `{"chunks":[{"chunk_number":1,"etag":"e1"},{"chunk_number":2,"etag":"e2"}]}`

	t.Run("success - merged file is returned", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		record := &domain.FileRecord{
			FileID:       uuid.New(),
			FileName:     "movie.mp4",
			FileSize:     20971520,
			DownloadURL:  "http://minio/movie",
			URLExpiresAt: time.Now().Add(24 * time.Hour),
		}

		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(42)).
			Return(record, nil)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response upload2.V1CompleteChunkUploadResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, record.FileID, response.FileID)
		assert.Equal(t, "movie.mp4", response.FileName)
		assert.Equal(t, "http://minio/movie", response.DownloadURL)

		// the submitted etags made it through to the service
		submitted := mockService.Calls[0].Arguments.Get(2).([]domain.ChunkETag)
		require.Len(t, submitted, 2)
		assert.Equal(t, domain.ChunkETag{ChunkNumber: 2, ETag: "e2"}, submitted[1])
	})

	t.Run("error - invalid task id", func(t *testing.T) {
		// Arrange
		mockService := upload.NewMockUploadService()
		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/not-a-uuid/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CompleteChunkUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - unknown task", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(42)).
			Return((*domain.FileRecord)(nil), domain.ErrTaskNotFound)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})

	t.Run("error - missing chunks", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(42)).
			Return((*domain.FileRecord)(nil), domain.ErrIncompleteChunks)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})

	t.Run("error - task no longer active", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(42)).
			Return((*domain.FileRecord)(nil), domain.ErrInvalidTaskState)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusConflict, w.Code)
	})

	t.Run("error - not the owner", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(99)).
			Return((*domain.FileRecord)(nil), domain.ErrPermissionDenied)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "99")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusForbidden, w.Code)
	})

	t.Run("error - merge failure", func(t *testing.T) {
		// Arrange
		taskID := uuid.New()
		mockService := upload.NewMockUploadService()
		mockService.On("CompleteChunkUpload", mock.Anything, taskID, mock.Anything, int64(42)).
			Return((*domain.FileRecord)(nil), domain.ErrMergeFailed)

		handler := upload2.NewUploadHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, handler, nil, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodPost, "/api/v1/upload/chunk/"+taskID.String()+"/complete", strings.NewReader(body))
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusServiceUnavailable, w.Code)
	})
}
