package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// QuoteRequestedHandler asks the quoting supplier's staff to price the order.
// The supplier in the event is the one being asked, not necessarily the one
// already bound to the order, so staff are resolved from the event directly.
type QuoteRequestedHandler struct {
	orders   ports.OrderRepository
	users    ports.UserRepository
	notifier Notifier
}

// NewQuoteRequestedHandler creates the handler.
func NewQuoteRequestedHandler(
	orders ports.OrderRepository, users ports.UserRepository, notifier Notifier,
) QuoteRequestedHandler {
	return QuoteRequestedHandler{orders: orders, users: users, notifier: notifier}
}

// Handle fans out the quote request.
func (h QuoteRequestedHandler) Handle(ctx context.Context, event order.QuoteRequestedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}

	staff, err := h.users.GetBySupplierID(ctx, event.SupplierID)
	if err != nil {
		return err
	}

	drafts := draftsFor(staff, notification.TypeQuoteRequested,
		fmt.Sprintf("Quote requested: order %s", aggregate.Code()),
		fmt.Sprintf("Please price order %s for %s.", aggregate.Code(), aggregate.Address().City()),
		map[string]any{"orderId": aggregate.ID().String()})

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
