package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// IssueRefundCommandHandler reverses money back to the customer.
//
// The ceiling check runs before any row is written: a caretaker asking for too
// much leaves no REFUND entry behind. The payment flips to Refunded and the
// audit entry commits atomically with it.
type IssueRefundCommandHandler struct {
	uowFactory PaymentUoWFactory
	policy     services.RefundPolicy
	publisher  ports.EventPublisher
}

// NewIssueRefundCommandHandler creates a handler for refund issuing.
func NewIssueRefundCommandHandler(
	uowFactory PaymentUoWFactory, publisher ports.EventPublisher,
) IssueRefundCommandHandler {
	return IssueRefundCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewRefundPolicy(),
		publisher:  publisher,
	}
}

// Handle processes the refund command.
// Publishes payment.UpdatedEvent with Refunded status after a successful commit.
func (h IssueRefundCommandHandler) Handle(ctx context.Context, cmd IssueRefundCommand) error {
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
	if err = h.policy.Authorize(actor.Role(), cmd.Amount()); err != nil {
		return err
	}

	paymentRepo := uow.PaymentRepository()
	record, err := paymentRepo.Get(ctx, cmd.PaymentID())
	if err != nil {
		return err
	}
	if !record.OrderID().IsEqual(cmd.OrderID()) {
		return errs.NewValueIsInvalidErrorWithCause("paymentID",
			fmt.Errorf("payment does not belong to order %s", cmd.OrderID()))
	}
	if record.Status() != payment.StatusPaid {
		return errs.NewValueIsInvalidErrorWithCause("paymentID",
			fmt.Errorf("payment in status %s cannot be refunded", record.Status()))
	}
	if cmd.Amount().AmountCents() > record.Amount().AmountCents() {
		return errs.NewValueIsOutOfRangeError(
			"refund amount", cmd.Amount().AmountCents(), 0, record.Amount().AmountCents())
	}

	if err = record.UpdateStatus(payment.StatusRefunded); err != nil {
		return err
	}
	if err = paymentRepo.Update(ctx, record); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), cmd.OrderID(), cmd.ActorID(), audit.ActionRefund,
		map[string]any{
			"paymentId": record.ID().String(),
			"amount":    cmd.Amount().AmountCents(),
			"currency":  cmd.Amount().Currency(),
			"reason":    cmd.Reason(),
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

	h.publisher.Publish(ctx, payment.UpdatedEvent{
		OrderID:   cmd.OrderID(),
		PaymentID: record.ID(),
		Status:    payment.StatusRefunded,
		Amount:    cmd.Amount(),
		Provider:  record.Provider(),
	})
	return nil
}
