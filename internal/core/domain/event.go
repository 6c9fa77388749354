package domain

// MinIOEvent represents a MinIO bucket notification message
type MinIOEvent struct {
	EventName string `json:"EventName"`
	Key       string `json:"Key"`
	Records   []struct {
		EventName string `json:"eventName"`
		S3        struct {
			Bucket struct {
				Name string `json:"name"`
			} `json:"bucket"`
			Object struct {
				Key  string `json:"key"`
				Size int64  `json:"size"`
				ETag string `json:"eTag"`
			} `json:"object"`
		} `json:"s3"`
		EventTime string `json:"eventTime"`
	} `json:"Records"`
}

// PartUploadNotification is one store side "part object created" event
// after it has been matched against a task's part key layout
type PartUploadNotification struct {
	BucketName  string
	ObjectKey   string
	ChunkNumber int
	ObjectSize  int64
	ObjectETag  string
}
