package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payout"
)

// PayoutRepository defines the persistence contract for supplier payouts.
type PayoutRepository interface {
	// Add persists a newly scheduled payout.
	Add(ctx context.Context, aggregate *payout.Payout) error

	// Update persists changes to an existing payout.
	Update(ctx context.Context, aggregate *payout.Payout) error

	// Get retrieves a payout by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payout.Payout, error)

	// GetByOrder retrieves all payouts of an order, oldest first.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*payout.Payout, error)
}
