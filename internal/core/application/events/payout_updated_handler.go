package events

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/core/ports"
)

// PayoutUpdatedHandler tells the supplier's staff about their payout and keeps
// operations in the loop. Customers are never notified of payouts, and an
// order without supplier staff produces nothing at all.
type PayoutUpdatedHandler struct {
	orders   ports.OrderRepository
	resolver StakeholderResolver
	notifier Notifier
}

// NewPayoutUpdatedHandler creates the handler.
func NewPayoutUpdatedHandler(
	orders ports.OrderRepository, resolver StakeholderResolver, notifier Notifier,
) PayoutUpdatedHandler {
	return PayoutUpdatedHandler{orders: orders, resolver: resolver, notifier: notifier}
}

// Handle fans out the payout update.
func (h PayoutUpdatedHandler) Handle(ctx context.Context, event payout.UpdatedEvent) error {
	aggregate, err := h.orders.Get(ctx, event.OrderID)
	if err != nil {
		return err
	}
	stakeholders, err := h.resolver.Resolve(ctx, aggregate)
	if err != nil {
		return err
	}

	// No supplier staff means nobody to pay out to; the whole event is moot.
	if len(stakeholders.SupplierStaff) == 0 {
		return nil
	}

	data := map[string]any{
		"orderId":  aggregate.ID().String(),
		"payoutId": event.PayoutID.String(),
		"status":   event.Status.String(),
		"amount":   event.Amount.AmountCents(),
	}
	title := fmt.Sprintf("Order %s: payout %s", aggregate.Code(), event.Status)

	var supplierBody string
	switch event.Status {
	case payout.StatusPending:
		supplierBody = fmt.Sprintf("A payout of %s has been scheduled for you.", event.Amount)
	case payout.StatusReleased:
		supplierBody = fmt.Sprintf("Your payout of %s has been released.", event.Amount)
	case payout.StatusFailed:
		supplierBody = "Your payout could not be processed. Operations will follow up."
	}

	drafts := draftsFor(stakeholders.SupplierStaff, notification.TypePayoutStatus, title, supplierBody, data)
	drafts = append(drafts,
		draftsFor(stakeholders.Operations, notification.TypePayoutStatus, title,
			fmt.Sprintf("Payout of %s on order %s is %s.", event.Amount, aggregate.Code(), event.Status),
			data)...)

	_, err = h.notifier.Send(ctx, drafts)
	return err
}
