package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// DriverAssignedHandler tells the assigned driver's staff about the new
// delivery job. Nobody else hears about it; assignment is internal routing
// until the status itself moves.
type DriverAssignedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewDriverAssignedHandler creates the handler.
func NewDriverAssignedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) DriverAssignedHandler {
	return DriverAssignedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the driver assignment.
func (h DriverAssignedHandler) Handle(ctx context.Context, event order.DriverAssignedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	data := map[string]any{
		"orderId":  aggregate.ID().String(),
		"driverId": event.DriverID.String(),
	}

	drafts := draftsFor(stakeholders.DriverStaff, notification.TypeOrderDriver,
		fmt.Sprintf("Delivery job: order %s", aggregate.Code()),
		fmt.Sprintf("Order %s is assigned to you for delivery to %s.",
			aggregate.Code(), aggregate.Address().City()),
		data)

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
