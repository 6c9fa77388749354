package file_test

import (
	"encoding/json"
	"io"
	"log/slog"
	http2 "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi"
	file3 "github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi/v1/file"
	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/file"
)

func sampleRecord() *domain.FileRecord {
	return &domain.FileRecord{
		FileID:        uuid.New(),
		FileName:      "cover.png",
		FileSize:      512 * 1024,
		FileType:      domain.FileTypeImage,
		MimeType:      "image/png",
		DownloadURL:   "http://minio/cover",
		URLExpiresAt:  time.Now().Add(time.Hour),
		DownloadCount: 3,
		Status:        domain.FileStatusActive,
		UserID:        42,
	}
}

func TestGetFileV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - file returned", func(t *testing.T) {
		// Arrange
		record := sampleRecord()

		mockService := file.NewMockFileService()
		mockService.On("GetFile", mock.Anything, record.FileID).Return(record, nil)

		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/"+record.FileID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response file3.V1FileResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, record.FileID, response.FileID)
		assert.Equal(t, "cover.png", response.FileName)
		assert.Equal(t, "http://minio/cover", response.DownloadURL)
		assert.Equal(t, int64(3), response.DownloadCount)
	})

	t.Run("error - unknown file", func(t *testing.T) {
		// Arrange
		fileID := uuid.New()
		mockService := file.NewMockFileService()
		mockService.On("GetFile", mock.Anything, fileID).
			Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)

		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/"+fileID.String(), nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})

	t.Run("error - invalid file id", func(t *testing.T) {
		// Arrange
		mockService := file.NewMockFileService()
		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/not-a-uuid", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetFile", mock.Anything, mock.Anything)
	})
}

func TestGetDownloadURLV1(t *testing.T) {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success - fresh url issued", func(t *testing.T) {
		// Arrange
		record := sampleRecord()

		mockService := file.NewMockFileService()
		mockService.On("GetDownloadURL", mock.Anything, record.FileID, int64(42)).Return(record, nil)

		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/"+record.FileID.String()+"/download", nil)
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusOK, w.Code)

		var response file3.V1DownloadURLResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, record.FileID, response.FileID)
		assert.Equal(t, "http://minio/cover", response.DownloadURL)
	})

	t.Run("error - missing user header", func(t *testing.T) {
		// Arrange
		mockService := file.NewMockFileService()
		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/"+uuid.NewString()+"/download", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusUnauthorized, w.Code)
		mockService.AssertNotCalled(t, "GetDownloadURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("error - unknown file", func(t *testing.T) {
		// Arrange
		fileID := uuid.New()
		mockService := file.NewMockFileService()
		mockService.On("GetDownloadURL", mock.Anything, fileID, int64(42)).
			Return((*domain.FileRecord)(nil), domain.ErrFileNotFound)

		handler := file3.NewFileHandlerV1(mockService, discardLogger)
		h := chi.NewRouter(discardLogger, nil, handler, "")
		w := httptest.NewRecorder()

		req := httptest.NewRequest(http2.MethodGet, "/api/v1/file/"+fileID.String()+"/download", nil)
		req.Header.Set("X-User-ID", "42")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http2.StatusNotFound, w.Code)
	})
}
