package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// MessagePostedHandler notifies the order's other parties of a new message.
// The author never receives their own message back.
type MessagePostedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewMessagePostedHandler creates the handler.
func NewMessagePostedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) MessagePostedHandler {
	return MessagePostedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the message.
func (h MessagePostedHandler) Handle(ctx context.Context, event order.MessagePostedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	data := map[string]any{"orderId": aggregate.ID().String()}
	title := fmt.Sprintf("Order %s: new message", aggregate.Code())

	recipients := append([]Draft{},
		draftsFor(stakeholders.Operations, notification.TypeOrderMessage, title, event.Text, data)...)
	recipients = append(recipients,
		draftsFor(stakeholders.SupplierStaff, notification.TypeOrderMessage, title, event.Text, data)...)
	recipients = append(recipients, Draft{
		Recipient: stakeholders.Customer,
		Type:      notification.TypeOrderMessage,
		Title:     title,
		Body:      event.Text,
		Data:      data,
	})

	drafts := recipients[:0]
	for _, draft := range recipients {
		if draft.Recipient != nil && draft.Recipient.ID().IsEqual(event.AuthorID) {
			continue
		}
		drafts = append(drafts, draft)
	}

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
