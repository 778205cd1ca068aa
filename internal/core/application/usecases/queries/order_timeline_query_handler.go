package queries

import (
	"context"
	"encoding/json"
	"time"

	"fulfilment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderTimelineQueryHandler reads an order's audit trail from the database.
type OrderTimelineQueryHandler struct {
	db *gorm.DB
}

// NewOrderTimelineQueryHandler creates a handler for timeline queries.
func NewOrderTimelineQueryHandler(db *gorm.DB) OrderTimelineQueryHandler {
	return OrderTimelineQueryHandler{db: db}
}

// Handle returns the order's audit entries ordered newest first, the way a
// dashboard renders a timeline. An order with no history yields an empty
// slice, not an error.
func (h OrderTimelineQueryHandler) Handle(
	ctx context.Context,
	query OrderTimelineQuery,
) ([]OrderTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	entries := make([]OrderTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			action,
			payload,
			created_at
		FROM audit_entries
		WHERE order_id = ?
		ORDER BY created_at DESC, id DESC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry OrderTimelineQueryResponse
		var id, actorID uuid.UUID
		var action, payload string
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&actorID,
			&action,
			&payload,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID

		entryActorID, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ActorID = entryActorID

		entry.Action = action
		entry.CreatedAt = createdAt

		var fields map[string]any
		if json.Unmarshal([]byte(payload), &fields) == nil {
			entry.Payload = fields
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
