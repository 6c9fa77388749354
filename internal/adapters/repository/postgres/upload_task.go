package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
)

const uploadTaskColumns = `task_id, user_id, file_md5, file_name, file_size, chunk_size,
		total_chunks, mime_type, bucket_name, object_key, uploaded_chunks, status,
		expires_at, created_at, updated_at`

type sqlUploadTaskRepository struct {
	db SQLQuerier
}

// NewSQLUploadTaskRepository creates a new sqlUploadTaskRepository
func NewSQLUploadTaskRepository(db SQLQuerier) port.UploadTaskRepository {
	return &sqlUploadTaskRepository{db: db}
}

// Create creates an upload task
func (s *sqlUploadTaskRepository) Create(ctx context.Context, task domain.UploadTask) error {
	query := `
		INSERT INTO upload_task (
			task_id, user_id, file_md5, file_name, file_size, chunk_size,
			total_chunks, mime_type, bucket_name, object_key, status, expires_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		task.TaskID,
		task.UserID,
		task.FileMD5,
		task.FileName,
		task.FileSize,
		task.ChunkSize,
		task.TotalChunks,
		task.MimeType,
		task.BucketName,
		task.ObjectKey,
		task.Status,
		task.ExpiresAt,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *sqlUploadTaskRepository) FindByTaskID(ctx context.Context, taskID uuid.UUID) (*domain.UploadTask, error) {
	query := `
		SELECT ` + uploadTaskColumns + `
		FROM upload_task
		WHERE task_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, taskID))
}

func (s *sqlUploadTaskRepository) FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.UploadTask, error) {
	query := `
		SELECT ` + uploadTaskColumns + `
		FROM upload_task
		WHERE file_md5 = $1 AND status = 'active' AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, fileMD5))
}

func (s *sqlUploadTaskRepository) FindActiveByObjectKey(ctx context.Context, bucket, objectKey string) (*domain.UploadTask, error) {
	query := `
		SELECT ` + uploadTaskColumns + `
		FROM upload_task
		WHERE bucket_name = $1 AND object_key = $2 AND status = 'active'`

	return s.scanOne(s.db.QueryRowContext(ctx, query, bucket, objectKey))
}

func (s *sqlUploadTaskRepository) CountActiveByUser(ctx context.Context, userID int64) (int, error) {
	query := `SELECT count(*) FROM upload_task WHERE user_id = $1 AND status = 'active'`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// AcquireUserLock takes a transaction scoped advisory lock keyed on the user.
// Released automatically at commit or rollback.
func (s *sqlUploadTaskRepository) AcquireUserLock(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, userID)
	return err
}

// UpdateStatus updates status
func (s *sqlUploadTaskRepository) UpdateStatus(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) error {
	query := `UPDATE upload_task SET status = $1, updated_at = now() WHERE task_id = $2`

	result, err := s.db.ExecContext(ctx, query, status, taskID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

// UpdateStatusIfActive transitions the task out of active with a
// compare-and-set and reports whether this call won the transition
func (s *sqlUploadTaskRepository) UpdateStatusIfActive(ctx context.Context, taskID uuid.UUID, status domain.TaskStatus) (bool, error) {
	query := `UPDATE upload_task SET status = $1, updated_at = now() WHERE task_id = $2 AND status = 'active'`

	result, err := s.db.ExecContext(ctx, query, status, taskID)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// RefreshProgress recomputes uploaded_chunks from the chunk table
func (s *sqlUploadTaskRepository) RefreshProgress(ctx context.Context, taskID uuid.UUID) error {
	query := `
		UPDATE upload_task SET
			uploaded_chunks = (
				SELECT count(*) FROM upload_chunk
				WHERE task_id = $1 AND status IN ('uploading', 'uploaded')
			),
			updated_at = now()
		WHERE task_id = $1`

	result, err := s.db.ExecContext(ctx, query, taskID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (s *sqlUploadTaskRepository) FindAllExpired(ctx context.Context, now time.Time) ([]domain.UploadTask, error) {
	query := `
		SELECT ` + uploadTaskColumns + `
		FROM upload_task
		WHERE status = 'active' AND expires_at < $1`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.UploadTask
	for rows.Next() {
		var row dbUploadTask
		if err := rows.Scan(
			&row.TaskID,
			&row.UserID,
			&row.FileMD5,
			&row.FileName,
			&row.FileSize,
			&row.ChunkSize,
			&row.TotalChunks,
			&row.MimeType,
			&row.BucketName,
			&row.ObjectKey,
			&row.UploadedChunks,
			&row.Status,
			&row.ExpiresAt,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

func (s *sqlUploadTaskRepository) scanOne(row *sql.Row) (*domain.UploadTask, error) {
	var dbRow dbUploadTask
	err := row.Scan(
		&dbRow.TaskID,
		&dbRow.UserID,
		&dbRow.FileMD5,
		&dbRow.FileName,
		&dbRow.FileSize,
		&dbRow.ChunkSize,
		&dbRow.TotalChunks,
		&dbRow.MimeType,
		&dbRow.BucketName,
		&dbRow.ObjectKey,
		&dbRow.UploadedChunks,
		&dbRow.Status,
		&dbRow.ExpiresAt,
		&dbRow.CreatedAt,
		&dbRow.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return dbRow.ToDomain(), nil
}

type dbUploadTask struct {
	TaskID         uuid.UUID `db:"task_id"`
	UserID         int64     `db:"user_id"`
	FileMD5        string    `db:"file_md5"`
	FileName       string    `db:"file_name"`
	FileSize       int64     `db:"file_size"`
	ChunkSize      int64     `db:"chunk_size"`
	TotalChunks    int       `db:"total_chunks"`
	MimeType       string    `db:"mime_type"`
	BucketName     string    `db:"bucket_name"`
	ObjectKey      string    `db:"object_key"`
	UploadedChunks int       `db:"uploaded_chunks"`
	Status         string    `db:"status"`
	ExpiresAt      time.Time `db:"expires_at"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// ToDomain converts db obj to domain
func (t *dbUploadTask) ToDomain() *domain.UploadTask {
	return &domain.UploadTask{
		TaskID:         t.TaskID,
		UserID:         t.UserID,
		FileMD5:        t.FileMD5,
		FileName:       t.FileName,
		FileSize:       t.FileSize,
		ChunkSize:      t.ChunkSize,
		TotalChunks:    t.TotalChunks,
		MimeType:       t.MimeType,
		BucketName:     t.BucketName,
		ObjectKey:      t.ObjectKey,
		UploadedChunks: t.UploadedChunks,
		Status:         domain.TaskStatus(t.Status),
		ExpiresAt:      t.ExpiresAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
