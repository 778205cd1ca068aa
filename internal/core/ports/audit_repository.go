package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
)

// AuditRepository defines the persistence contract for the append-only audit
// trail. Entries are only ever added, never updated or deleted.
type AuditRepository interface {
	// Add appends an audit entry. Must run in the same transaction as the
	// mutation the entry documents.
	Add(ctx context.Context, entry *audit.Entry) error

	// GetByOrder retrieves the full trail of an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*audit.Entry, error)
}
