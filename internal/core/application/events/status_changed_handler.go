package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// customerCopy is the customer-facing wording per status. Statuses without an
// entry do not notify the customer.
func customerCopy(status order.Status) (string, bool) {
	copies := map[order.Status]string{
		order.SourcingSupplier:  "We are finding a supplier for your order.",
		order.SupplierConfirmed: "A supplier has been confirmed for your order.",
		order.InProgress:        "Your order is being worked on.",
		order.ReadyForDelivery:  "Your order is ready and waiting for a driver.",
		order.OutForDelivery:    "Your order is out for delivery.",
		order.Delivered:         "Your order has been delivered.",
		order.Closed:            "Your order is complete. Thank you!",
		order.Canceled:          "Your order has been canceled.",
	}
	text, ok := copies[status]
	return text, ok
}

// StatusChangedHandler fans a status transition out to the customer (with the
// customer copy table), the supplier's staff, the driver's staff, and
// operations.
type StatusChangedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewStatusChangedHandler creates the handler.
func NewStatusChangedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) StatusChangedHandler {
	return StatusChangedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the status change.
func (h StatusChangedHandler) Handle(ctx context.Context, event order.StatusChangedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	data := map[string]any{
		"orderId": aggregate.ID().String(),
		"from":    event.From.String(),
		"to":      event.To.String(),
	}
	title := fmt.Sprintf("Order %s: %s", aggregate.Code(), event.To)
	internalBody := fmt.Sprintf("Order %s moved from %s to %s.", aggregate.Code(), event.From, event.To)

	drafts := draftsFor(stakeholders.Operations, notification.TypeOrderStatus, title, internalBody, data)
	drafts = append(drafts,
		draftsFor(stakeholders.SupplierStaff, notification.TypeOrderStatus, title, internalBody, data)...)
	drafts = append(drafts,
		draftsFor(stakeholders.DriverStaff, notification.TypeOrderStatus, title, internalBody, data)...)

	if body, ok := customerCopy(event.To); ok {
		drafts = append(drafts, Draft{
			Recipient: stakeholders.Customer,
			Type:      notification.TypeOrderStatus,
			Title:     title,
			Body:      body,
			Data:      data,
		})
	}

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
