package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// OrderCreatedHandler notifies operations staff of every new order, and sends
// the customer a confirmation copy for self-service orders. Manual counter
// sales skip the customer copy: the customer was standing at the counter.
type OrderCreatedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewOrderCreatedHandler creates the handler.
func NewOrderCreatedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) OrderCreatedHandler {
	return OrderCreatedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the created event.
func (h OrderCreatedHandler) Handle(ctx context.Context, event order.CreatedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	data := map[string]any{"orderId": aggregate.ID().String()}
	title := fmt.Sprintf("New order %s", aggregate.Code())

	drafts := draftsFor(stakeholders.Operations, notification.TypeOrderNew, title,
		fmt.Sprintf("Order %s needs a supplier.", aggregate.Code()), data)

	if !event.Manual {
		drafts = append(drafts, Draft{
			Recipient: stakeholders.Customer,
			Type:      notification.TypeOrderNew,
			Title:     fmt.Sprintf("Order %s received", aggregate.Code()),
			Body:      "We have your order and are lining up a supplier.",
			Data:      data,
		})
	}

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
