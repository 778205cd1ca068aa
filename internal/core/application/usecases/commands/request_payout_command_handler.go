package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// RequestPayoutCommandHandler schedules a supplier payout.
//
// The payout budget check (cumulative non-failed payouts must not exceed the
// order total) runs inside the transaction against the rows read there, so two
// racing requests cannot jointly overdraw the order.
type RequestPayoutCommandHandler struct {
	uowFactory PayoutUoWFactory
	policy     services.PayoutPolicy
	publisher  ports.EventPublisher
}

// NewRequestPayoutCommandHandler creates a handler for payout scheduling.
func NewRequestPayoutCommandHandler(
	uowFactory PayoutUoWFactory, publisher ports.EventPublisher,
) RequestPayoutCommandHandler {
	return RequestPayoutCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewPayoutPolicy(),
		publisher:  publisher,
	}
}

// Handle processes the payout scheduling command.
// Publishes payout.UpdatedEvent after a successful commit.
func (h RequestPayoutCommandHandler) Handle(ctx context.Context, cmd RequestPayoutCommand) error {
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
		return errs.NewOperationForbiddenErrorWithCause("request payout",
			fmt.Errorf("role %s may not schedule payouts", actor.Role()))
	}

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	payoutRepo := uow.PayoutRepository()
	existing, err := payoutRepo.GetByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.policy.Authorize(aggregate, cmd.SupplierID(), cmd.Amount(), existing); err != nil {
		return err
	}

	newPayout, err := payout.NewPayout(cmd.PayoutID(), cmd.OrderID(), cmd.SupplierID(), cmd.Amount())
	if err != nil {
		return err
	}
	if err = payoutRepo.Add(ctx, newPayout); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, payout.UpdatedEvent{
		OrderID:    cmd.OrderID(),
		PayoutID:   newPayout.ID(),
		SupplierID: cmd.SupplierID(),
		Status:     payout.StatusPending,
		Amount:     cmd.Amount(),
	})
	return nil
}
