package events

import (
	"context"
	"fmt"
	"log/slog"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/core/ports"
)

// Dispatcher routes published domain events to their handlers synchronously,
// in-process. Handler failures are logged and swallowed: the mutation that
// raised the event has already committed and must not be failed retroactively.
type Dispatcher struct {
	orderCreated   OrderCreatedHandler
	statusChanged  StatusChangedHandler
	driverAssigned DriverAssignedHandler
	paymentUpdated PaymentUpdatedHandler
	payoutUpdated  PayoutUpdatedHandler
	quoteRequested QuoteRequestedHandler
	messagePosted  MessagePostedHandler

	logger *slog.Logger
}

// NewDispatcher wires the fan-out over the given repositories.
func NewDispatcher(
	orders ports.OrderRepository,
	users ports.UserRepository,
	notifications ports.NotificationRepository,
	logger *slog.Logger,
) *Dispatcher {
	resolver := NewStakeholderResolver(users)
	notifier := NewNotifier(notifications)

	return &Dispatcher{
		orderCreated:   NewOrderCreatedHandler(orders, resolver, notifier),
		statusChanged:  NewStatusChangedHandler(orders, resolver, notifier),
		driverAssigned: NewDriverAssignedHandler(orders, resolver, notifier),
		paymentUpdated: NewPaymentUpdatedHandler(orders, resolver, notifier),
		payoutUpdated:  NewPayoutUpdatedHandler(orders, resolver, notifier),
		quoteRequested: NewQuoteRequestedHandler(orders, users, notifier),
		messagePosted:  NewMessagePostedHandler(orders, resolver, notifier),
		logger:         logger.With("component", "event_dispatcher"),
	}
}

// Publish routes one event. Unknown event types are logged and dropped.
func (d *Dispatcher) Publish(ctx context.Context, event any) {
	var err error
	switch e := event.(type) {
	case order.CreatedEvent:
		err = d.orderCreated.Handle(ctx, e)
	case order.StatusChangedEvent:
		err = d.statusChanged.Handle(ctx, e)
	case order.DriverAssignedEvent:
		err = d.driverAssigned.Handle(ctx, e)
	case payment.UpdatedEvent:
		err = d.paymentUpdated.Handle(ctx, e)
	case payout.UpdatedEvent:
		err = d.payoutUpdated.Handle(ctx, e)
	case order.QuoteRequestedEvent:
		err = d.quoteRequested.Handle(ctx, e)
	case order.MessagePostedEvent:
		err = d.messagePosted.Handle(ctx, e)
	default:
		d.logger.Warn("unknown event type dropped", "event", fmt.Sprintf("%T", event))
		return
	}

	if err != nil {
		d.logger.Error("event fan-out failed",
			"event", fmt.Sprintf("%T", event),
			"error", err)
	}
}

var _ ports.EventPublisher = (*Dispatcher)(nil)
