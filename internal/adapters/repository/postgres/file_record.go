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

const fileRecordColumns = `file_id, file_name, file_size, file_type, mime_type, file_ext,
		bucket_name, object_key, file_md5, download_url, url_expires_at,
		download_count, status, user_id, created_at`

type sqlFileRecordRepository struct {
	db SQLQuerier
}

// NewSQLFileRecordRepository creates a new sqlFileRecordRepository
func NewSQLFileRecordRepository(db SQLQuerier) port.FileRecordRepository {
	return &sqlFileRecordRepository{db: db}
}

// Create creates a file record
func (s *sqlFileRecordRepository) Create(ctx context.Context, record domain.FileRecord) error {
	query := `
		INSERT INTO file_record (
			file_id, file_name, file_size, file_type, mime_type, file_ext,
			bucket_name, object_key, file_md5, download_url, url_expires_at,
			status, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := s.db.ExecContext(
		ctx,
		query,
		record.FileID,
		record.FileName,
		record.FileSize,
		record.FileType,
		record.MimeType,
		record.FileExt,
		record.BucketName,
		record.ObjectKey,
		record.FileMD5,
		record.DownloadURL,
		record.URLExpiresAt,
		record.Status,
		record.UserID,
	)
	if err != nil {
		return err
	}
	return nil
}

func (s *sqlFileRecordRepository) FindByFileID(ctx context.Context, fileID uuid.UUID) (*domain.FileRecord, error) {
	query := `
		SELECT ` + fileRecordColumns + `
		FROM file_record
		WHERE file_id = $1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, fileID))
}

// FindActiveByFileMD5 returns the newest active record with the given content hash
func (s *sqlFileRecordRepository) FindActiveByFileMD5(ctx context.Context, fileMD5 string) (*domain.FileRecord, error) {
	query := `
		SELECT ` + fileRecordColumns + `
		FROM file_record
		WHERE file_md5 = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1`

	return s.scanOne(s.db.QueryRowContext(ctx, query, fileMD5))
}

// UpdateDownloadURL stores a freshly presigned download url
func (s *sqlFileRecordRepository) UpdateDownloadURL(ctx context.Context, fileID uuid.UUID, url string, expiresAt time.Time) error {
	query := `UPDATE file_record SET download_url = $1, url_expires_at = $2 WHERE file_id = $3`

	result, err := s.db.ExecContext(ctx, query, url, expiresAt, fileID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

func (s *sqlFileRecordRepository) IncrementDownloadCount(ctx context.Context, fileID uuid.UUID) error {
	query := `UPDATE file_record SET download_count = download_count + 1 WHERE file_id = $1`

	result, err := s.db.ExecContext(ctx, query, fileID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

// UpdateStatus updates status
func (s *sqlFileRecordRepository) UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error {
	query := `UPDATE file_record SET status = $1 WHERE file_id = $2`

	result, err := s.db.ExecContext(ctx, query, status, fileID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return domain.ErrFileNotFound
	}

	return nil
}

func (s *sqlFileRecordRepository) ListByUser(ctx context.Context, userID int64, fileType *domain.FileType) ([]domain.FileRecord, error) {
	query := `
		SELECT ` + fileRecordColumns + `
		FROM file_record
		WHERE user_id = $1 AND status = 'active'`
	args := []any{userID}

	if fileType != nil {
		query += ` AND file_type = $2`
		args = append(args, *fileType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.FileRecord
	for rows.Next() {
		var row dbFileRecord
		if err := rows.Scan(
			&row.FileID,
			&row.FileName,
			&row.FileSize,
			&row.FileType,
			&row.MimeType,
			&row.FileExt,
			&row.BucketName,
			&row.ObjectKey,
			&row.FileMD5,
			&row.DownloadURL,
			&row.URLExpiresAt,
			&row.DownloadCount,
			&row.Status,
			&row.UserID,
			&row.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, *row.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// SumFileSizeByUser totals the size of the user's active records
func (s *sqlFileRecordRepository) SumFileSizeByUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COALESCE(SUM(file_size), 0) FROM file_record WHERE user_id = $1 AND status = 'active'`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (s *sqlFileRecordRepository) CountByUserAndStatus(ctx context.Context, userID int64, status domain.FileStatus) (int, error) {
	query := `SELECT count(*) FROM file_record WHERE user_id = $1 AND status = $2`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, status).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (s *sqlFileRecordRepository) scanOne(row *sql.Row) (*domain.FileRecord, error) {
	var dbRow dbFileRecord
	err := row.Scan(
		&dbRow.FileID,
		&dbRow.FileName,
		&dbRow.FileSize,
		&dbRow.FileType,
		&dbRow.MimeType,
		&dbRow.FileExt,
		&dbRow.BucketName,
		&dbRow.ObjectKey,
		&dbRow.FileMD5,
		&dbRow.DownloadURL,
		&dbRow.URLExpiresAt,
		&dbRow.DownloadCount,
		&dbRow.Status,
		&dbRow.UserID,
		&dbRow.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}
	return dbRow.ToDomain(), nil
}

type dbFileRecord struct {
	FileID        uuid.UUID `db:"file_id"`
	FileName      string    `db:"file_name"`
	FileSize      int64     `db:"file_size"`
	FileType      string    `db:"file_type"`
	MimeType      string    `db:"mime_type"`
	FileExt       string    `db:"file_ext"`
	BucketName    string    `db:"bucket_name"`
	ObjectKey     string    `db:"object_key"`
	FileMD5       string    `db:"file_md5"`
	DownloadURL   string    `db:"download_url"`
	URLExpiresAt  time.Time `db:"url_expires_at"`
	DownloadCount int64     `db:"download_count"`
	Status        string    `db:"status"`
	UserID        int64     `db:"user_id"`
	CreatedAt     time.Time `db:"created_at"`
}

// ToDomain converts db obj to domain
func (f *dbFileRecord) ToDomain() *domain.FileRecord {
	return &domain.FileRecord{
		FileID:        f.FileID,
		FileName:      f.FileName,
		FileSize:      f.FileSize,
		FileType:      domain.FileType(f.FileType),
		MimeType:      f.MimeType,
		FileExt:       f.FileExt,
		BucketName:    f.BucketName,
		ObjectKey:     f.ObjectKey,
		FileMD5:       f.FileMD5,
		DownloadURL:   f.DownloadURL,
		URLExpiresAt:  f.URLExpiresAt,
		DownloadCount: f.DownloadCount,
		Status:        domain.FileStatus(f.Status),
		UserID:        f.UserID,
		CreatedAt:     f.CreatedAt,
	}
}
