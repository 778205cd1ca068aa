package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// CreateManualOrderCommandHandler records a counter sale: the order, its
// already-settled payment, and a MANUAL_CREATE audit entry are written in one
// transaction. Only operations staff may record manual orders.
type CreateManualOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateManualOrderCommandHandler creates a handler for counter sale recording.
func NewCreateManualOrderCommandHandler(
	uowFactory PaymentUoWFactory, publisher ports.EventPublisher,
) CreateManualOrderCommandHandler {
	return CreateManualOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the counter sale command.
// Publishes order.CreatedEvent (Manual) and payment.UpdatedEvent after commit.
func (h CreateManualOrderCommandHandler) Handle(ctx context.Context, cmd CreateManualOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}
	if !actor.Role().IsOperations() {
		return errs.NewOperationForbiddenErrorWithCause("create manual order",
			fmt.Errorf("role %s may not record counter sales", actor.Role()))
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), cmd.Code(),
		cmd.Contact(), cmd.Address(),
		cmd.Price(), cmd.DeliveryFee(),
		nil,
	)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	total, err := newOrder.Total()
	if err != nil {
		return err
	}
	paidPayment, err := payment.NewPayment(
		cmd.PaymentID(), newOrder.ID(), total,
		payment.StatusPaid, cmd.Provider(), cmd.ProviderRef(),
	)
	if err != nil {
		return err
	}
	if err = uow.PaymentRepository().Add(ctx, paidPayment); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), newOrder.ID(), cmd.ActorID(), audit.ActionManualCreate,
		map[string]any{
			"provider": cmd.Provider(),
			"amount":   total.AmountCents(),
			"currency": total.Currency(),
		},
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.CreatedEvent{OrderID: newOrder.ID(), Manual: true})
	h.publisher.Publish(ctx, payment.UpdatedEvent{
		OrderID:   newOrder.ID(),
		PaymentID: paidPayment.ID(),
		Status:    payment.StatusPaid,
		Amount:    total,
		Provider:  cmd.Provider(),
	})
	return nil
}
