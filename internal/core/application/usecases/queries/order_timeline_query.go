package queries

import (
	"errors"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrOrderTimelineQueryIsNotConstructed = errors.New(
	"OrderTimelineQuery must be created via NewOrderTimelineQuery constructor",
)

// OrderTimelineQuery requests the full audit trail of one order,
// oldest entry first.
type OrderTimelineQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewOrderTimelineQuery creates a timeline query for the given order.
func NewOrderTimelineQuery(orderID kernel.UUID) (OrderTimelineQuery, error) {
	if err := orderID.Validate(); err != nil {
		return OrderTimelineQuery{}, err
	}

	return OrderTimelineQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q OrderTimelineQuery) Validate() error {
	return q.guard.Validate(ErrOrderTimelineQueryIsNotConstructed)
}

// OrderID returns the order whose trail is requested.
func (q OrderTimelineQuery) OrderID() kernel.UUID { return q.orderID }

// OrderTimelineQueryResponse is one audit entry of an order's timeline.
// Payload is the free-form context recorded with the entry; it is nil when
// the stored payload cannot be parsed.
type OrderTimelineQueryResponse struct {
	ID        kernel.UUID
	ActorID   kernel.UUID
	Action    string
	Payload   map[string]any
	CreatedAt time.Time
}
