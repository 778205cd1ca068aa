package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/ports"
)

// PaymentUpdatedHandler tells operations about money movement and keeps the
// customer informed about their payment's settlement.
type PaymentUpdatedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewPaymentUpdatedHandler creates the handler.
func NewPaymentUpdatedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) PaymentUpdatedHandler {
	return PaymentUpdatedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the payment update.
func (h PaymentUpdatedHandler) Handle(ctx context.Context, event payment.UpdatedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	data := map[string]any{
		"orderId":   aggregate.ID().String(),
		"paymentId": event.PaymentID.String(),
		"status":    event.Status.String(),
		"amount":    event.Amount.AmountCents(),
	}
	title := fmt.Sprintf("Order %s: payment %s", aggregate.Code(), event.Status)

	drafts := draftsFor(stakeholders.Operations, notification.TypePaymentStatus, title,
		fmt.Sprintf("%s via %s on order %s.", event.Amount, event.Provider, aggregate.Code()),
		data)

	var customerBody string
	switch event.Status {
	case payment.StatusFailed:
		customerBody = "Your payment could not be processed. Please try again."
	case payment.StatusRefunded:
		customerBody = fmt.Sprintf("A refund of %s has been issued to you.", event.Amount)
	default:
		customerBody = fmt.Sprintf("Your payment of %s has been recorded.", event.Amount)
	}
	drafts = append(drafts, Draft{
		Recipient: stakeholders.Customer,
		Type:      notification.TypePaymentStatus,
		Title:     title,
		Body:      customerBody,
		Data:      data,
	})

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
