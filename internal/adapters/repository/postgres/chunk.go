package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

type sqlChunkRepository struct {
	db SQLQuerier
}

// NewSQLChunkRepository creates a new sqlChunkRepository
func NewSQLChunkRepository(db SQLQuerier) port.ChunkRepository {
	return &sqlChunkRepository{db: db}
}

// CreateBatch inserts every chunk slot of a task in one statement
func (s *sqlChunkRepository) CreateBatch(ctx context.Context, chunks []domain.ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	taskIDs := make([]uuid.UUID, 0, len(chunks))
	numbers := make([]int64, 0, len(chunks))
	urls := make([]string, 0, len(chunks))
	expiries := make([]time.Time, 0, len(chunks))
	statuses := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		taskIDs = append(taskIDs, chunk.TaskID)
		numbers = append(numbers, int64(chunk.ChunkNumber))
		urls = append(urls, chunk.UploadURL)
		expiries = append(expiries, chunk.URLExpiresAt)
		statuses = append(statuses, string(chunk.Status))
	}

	query := `
		INSERT INTO upload_chunk (task_id, chunk_number, upload_url, url_expires_at, status)
		SELECT * FROM unnest($1::uuid[], $2::bigint[], $3::text[], $4::timestamptz[], $5::text[])`

	_, err := s.db.ExecContext(
		ctx,
		query,
		pq.Array(taskIDs),
		pq.Array(numbers),
		pq.Array(urls),
		pq.Array(expiries),
		pq.Array(statuses),
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *sqlChunkRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) ([]domain.ChunkRecord, error) {
	query := `
		SELECT task_id, chunk_number, upload_url, url_expires_at, status, etag, created_at, updated_at
		FROM upload_chunk
		WHERE task_id = $1
		ORDER BY chunk_number`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []domain.ChunkRecord
	for rows.Next() {
		var row dbChunk
		if err := rows.Scan(
			&row.TaskID,
			&row.ChunkNumber,
			&row.UploadURL,
			&row.URLExpiresAt,
			&row.Status,
			&row.ETag,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		chunks = append(chunks, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return chunks, nil
}

func (s *sqlChunkRepository) CountByTaskIDAndStatus(ctx context.Context, taskID uuid.UUID, status domain.ChunkStatus) (int, error) {
	query := `SELECT count(*) FROM upload_chunk WHERE task_id = $1 AND status = $2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, taskID, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkUploaded records the client submitted etag and finalizes the chunk slot
func (s *sqlChunkRepository) MarkUploaded(ctx context.Context, taskID uuid.UUID, chunkNumber int, etag string) error {
	query := `
		UPDATE upload_chunk SET status = 'uploaded', etag = $1, updated_at = now()
		WHERE task_id = $2 AND chunk_number = $3`

	result, err := s.db.ExecContext(ctx, query, etag, taskID, chunkNumber)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrChunkNotFound
	}

	return nil
}

// MarkUploading advances a pending chunk slot, never demotes an uploaded one
func (s *sqlChunkRepository) MarkUploading(ctx context.Context, taskID uuid.UUID, chunkNumber int) error {
	query := `
		UPDATE upload_chunk SET status = 'uploading', updated_at = now()
		WHERE task_id = $1 AND chunk_number = $2 AND status = 'pending'`

	_, err := s.db.ExecContext(ctx, query, taskID, chunkNumber)
	return err
}

type dbChunk struct {
	TaskID       uuid.UUID      `db:"task_id"`
	ChunkNumber  int            `db:"chunk_number"`
	UploadURL    string         `db:"upload_url"`
	URLExpiresAt time.Time      `db:"url_expires_at"`
	Status       string         `db:"status"`
	ETag         sql.NullString `db:"etag"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (c *dbChunk) ToDomain() *domain.ChunkRecord {
	return &domain.ChunkRecord{
		TaskID:       c.TaskID,
		ChunkNumber:  c.ChunkNumber,
		UploadURL:    c.UploadURL,
		URLExpiresAt: c.URLExpiresAt,
		Status:       domain.ChunkStatus(c.Status),
		ETag:         c.ETag.String,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
