package port

import (
	"context"
	"time"
)

// CleanupService is service that handles cleanup of expired upload tasks
type CleanupService interface {
	CleanupExpiredTasks(ctx context.Context, now time.Time) error
}
