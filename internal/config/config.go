package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/Automan1218/gamevault-cloud2/internal/core/domain"
)

type Config struct {
	Env      Env
	Minio    MinioConfig
	Upload   UploadConfig
	NATS     NATSConfig
	Database DatabaseConfig
	Server   ServerConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

type MinioConfig struct {
	Endpoint       string `envconfig:"MINIO_ENDPOINT" required:"true"`
	AccessKey      string `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey      string `envconfig:"MINIO_SECRET_KEY" required:"true"`
	UseSSL         bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	ImageBucket    string `envconfig:"MINIO_IMAGE_BUCKET" default:"images"`
	VideoBucket    string `envconfig:"MINIO_VIDEO_BUCKET" default:"videos"`
	AudioBucket    string `envconfig:"MINIO_AUDIO_BUCKET" default:"audios"`
	DocumentBucket string `envconfig:"MINIO_DOCUMENT_BUCKET" default:"documents"`
	DefaultBucket  string `envconfig:"MINIO_DEFAULT_BUCKET" default:"files"`
}

// Buckets returns every configured bucket name
func (c MinioConfig) Buckets() []string {
	return []string{c.ImageBucket, c.VideoBucket, c.AudioBucket, c.DocumentBucket, c.DefaultBucket}
}

// FileTypePolicy is the allow list and size cap of one file category
type FileTypePolicy struct {
	AllowedExts []string
	MaxSize     int64
}

type UploadConfig struct {
	MaxUploadsPerUser  int           `envconfig:"UPLOAD_MAX_UPLOADS_PER_USER" default:"5"`
	ChunkThreshold     int64         `envconfig:"UPLOAD_CHUNK_THRESHOLD" default:"10485760"` // 10MB
	QuickUploadEnabled bool          `envconfig:"UPLOAD_QUICK_UPLOAD_ENABLED" default:"true"`
	TaskTTL            time.Duration `envconfig:"UPLOAD_TASK_TTL" default:"24h"`
	UploadURLTTL       time.Duration `envconfig:"UPLOAD_URL_TTL" default:"30m"`
	DownloadURLTTL     time.Duration `envconfig:"UPLOAD_DOWNLOAD_URL_TTL" default:"24h"`
	CleanupEvery       time.Duration `envconfig:"UPLOAD_CLEANUP_EVERY" default:"15m"`

	ImageExts    []string `envconfig:"UPLOAD_IMAGE_EXTS" default:"jpg,jpeg,png,gif,webp,bmp"`
	ImageMaxSize int64    `envconfig:"UPLOAD_IMAGE_MAX_SIZE" default:"10485760"` // 10MB
	VideoExts    []string `envconfig:"UPLOAD_VIDEO_EXTS" default:"mp4,avi,mov,mkv,webm"`
	VideoMaxSize int64    `envconfig:"UPLOAD_VIDEO_MAX_SIZE" default:"1073741824"` // 1GB
	AudioExts    []string `envconfig:"UPLOAD_AUDIO_EXTS" default:"mp3,wav,flac,aac,ogg"`
	AudioMaxSize int64    `envconfig:"UPLOAD_AUDIO_MAX_SIZE" default:"104857600"` // 100MB
	DocExts      []string `envconfig:"UPLOAD_DOC_EXTS" default:"pdf,doc,docx,xls,xlsx,ppt,pptx,txt,zip"`
	DocMaxSize   int64    `envconfig:"UPLOAD_DOC_MAX_SIZE" default:"52428800"` // 50MB
}

// PolicyFor returns the upload policy of one file category
func (c UploadConfig) PolicyFor(fileType domain.FileType) FileTypePolicy {
	switch fileType {
	case domain.FileTypeImage:
		return FileTypePolicy{AllowedExts: c.ImageExts, MaxSize: c.ImageMaxSize}
	case domain.FileTypeVideo:
		return FileTypePolicy{AllowedExts: c.VideoExts, MaxSize: c.VideoMaxSize}
	case domain.FileTypeAudio:
		return FileTypePolicy{AllowedExts: c.AudioExts, MaxSize: c.AudioMaxSize}
	case domain.FileTypeDocument:
		return FileTypePolicy{AllowedExts: c.DocExts, MaxSize: c.DocMaxSize}
	default:
		return FileTypePolicy{}
	}
}

// Classify resolves the file category from the file name extension.
// The extension is returned without the leading dot, lower cased.
func (c UploadConfig) Classify(fileName string) (domain.FileType, string) {
	ext := ""
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		ext = strings.ToLower(fileName[idx+1:])
	}
	if ext == "" {
		return domain.FileTypeUnknown, ""
	}
	for _, ft := range []domain.FileType{domain.FileTypeImage, domain.FileTypeVideo, domain.FileTypeAudio, domain.FileTypeDocument} {
		for _, allowed := range c.PolicyFor(ft).AllowedExts {
			if ext == strings.ToLower(allowed) {
				return ft, ext
			}
		}
	}
	return domain.FileTypeUnknown, ext
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" required:"true"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" required:"true"`
	Subject      string `envconfig:"NATS_SUBJECT" required:"true"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" required:"true"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
