package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for in-app
// notifications produced by event fan-out.
type NotificationRepository interface {
	// AddBatch persists a deduplicated batch of notifications in one write.
	// An empty batch is a no-op.
	AddBatch(ctx context.Context, aggregates []*notification.Notification) error

	// Update persists changes to a notification, e.g. the read marker.
	Update(ctx context.Context, aggregate *notification.Notification) error

	// GetByUser retrieves a user's notifications, newest first.
	GetByUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error)
}
