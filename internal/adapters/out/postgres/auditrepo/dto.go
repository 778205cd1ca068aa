// Package auditrepo persists the append-only audit trail. Payloads are
// free-form JSON documents; the trail is the system of record for refunds,
// quotes and supplier progress notes.
package auditrepo

import (
	"encoding/json"
	"time"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
type EntryDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ActorID   uuid.UUID `gorm:"type:uuid"`
	Action    string    `gorm:"index"`
	Payload   string    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

func fromDomain(entry *audit.Entry) (EntryDTO, error) {
	payload, err := json.Marshal(entry.Payload())
	if err != nil {
		return EntryDTO{}, err
	}

	return EntryDTO{
		ID:        entry.ID().Bytes(),
		OrderID:   entry.OrderID().Bytes(),
		ActorID:   entry.ActorID().Bytes(),
		Action:    string(entry.Action()),
		Payload:   string(payload),
		CreatedAt: entry.CreatedAt(),
	}, nil
}

func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err = json.Unmarshal([]byte(dto.Payload), &payload); err != nil {
		return nil, err
	}

	return audit.RestoreEntry(id, orderID, actorID, audit.Action(dto.Action), payload, dto.CreatedAt)
}
