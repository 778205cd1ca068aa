// Package notificationrepo persists in-app notifications produced by event
// fan-out. Batches are written in a single statement to keep fan-out cheap.
package notificationrepo

import (
	"encoding/json"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for persisting notifications.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index"`
	Type      string
	Title     string
	Body      string
	Data      string `gorm:"type:jsonb"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for notifications.
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(aggregate *notification.Notification) (NotificationDTO, error) {
	data, err := json.Marshal(aggregate.Data())
	if err != nil {
		return NotificationDTO{}, err
	}

	return NotificationDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID().Bytes(),
		Type:      aggregate.Type(),
		Title:     aggregate.Title(),
		Body:      aggregate.Body(),
		Data:      string(data),
		ReadAt:    aggregate.ReadAt(),
		CreatedAt: aggregate.CreatedAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err = json.Unmarshal([]byte(dto.Data), &data); err != nil {
		return nil, err
	}

	return notification.RestoreNotification(
		id, userID, dto.Type, dto.Title, dto.Body, data, dto.ReadAt, dto.CreatedAt)
}
