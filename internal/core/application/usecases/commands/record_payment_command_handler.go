package commands

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// RecordPaymentCommandHandler upserts a payment record against an order.
// Gateway webhooks are retried, so the handler tolerates seeing the same
// payment id more than once.
type RecordPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
	publisher  ports.EventPublisher
}

// NewRecordPaymentCommandHandler creates a handler for payment record updates.
func NewRecordPaymentCommandHandler(
	uowFactory PaymentUoWFactory, publisher ports.EventPublisher,
) RecordPaymentCommandHandler {
	return RecordPaymentCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payment record command.
// Publishes payment.UpdatedEvent after a successful commit.
func (h RecordPaymentCommandHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) error {
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

	// The order must exist before money is recorded against it.
	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	paymentRepo := uow.PaymentRepository()
	record, err := paymentRepo.Get(ctx, cmd.PaymentID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = payment.NewPayment(
			cmd.PaymentID(), cmd.OrderID(), cmd.Amount(),
			cmd.Status(), cmd.Provider(), cmd.ProviderRef(),
		)
		if err != nil {
			return err
		}
		if err = paymentRepo.Add(ctx, record); err != nil {
			return err
		}
	case err != nil:
		return err
	default:
		if err = record.UpdateStatus(cmd.Status()); err != nil {
			return err
		}
		if err = paymentRepo.Update(ctx, record); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, payment.UpdatedEvent{
		OrderID:   cmd.OrderID(),
		PaymentID: record.ID(),
		Status:    cmd.Status(),
		Amount:    record.Amount(),
		Provider:  record.Provider(),
	})
	return nil
}
