package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// UpdatePayoutStatusCommandHandler settles a pending payout. A release writes
// a TRIGGER_PAYOUT audit entry on the order; a failure only flips the payout.
type UpdatePayoutStatusCommandHandler struct {
	uowFactory PayoutUoWFactory
	publisher  ports.EventPublisher
}

// NewUpdatePayoutStatusCommandHandler creates a handler for payout settlement.
func NewUpdatePayoutStatusCommandHandler(
	uowFactory PayoutUoWFactory, publisher ports.EventPublisher,
) UpdatePayoutStatusCommandHandler {
	return UpdatePayoutStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the payout settlement command.
// Publishes payout.UpdatedEvent after a successful commit.
func (h UpdatePayoutStatusCommandHandler) Handle(ctx context.Context, cmd UpdatePayoutStatusCommand) error {
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
		return errs.NewOperationForbiddenErrorWithCause("update payout status",
			fmt.Errorf("role %s may not settle payouts", actor.Role()))
	}

	payoutRepo := uow.PayoutRepository()
	aggregate, err := payoutRepo.Get(ctx, cmd.PayoutID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateStatus(cmd.Target()); err != nil {
		return err
	}
	if err = payoutRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if cmd.Target() == payout.StatusReleased {
		entry, entryErr := audit.NewEntry(
			kernel.NewUUID(), aggregate.OrderID(), cmd.ActorID(), audit.ActionTriggerPayout,
			map[string]any{
				"payoutId": aggregate.ID().String(),
				"amount":   aggregate.Amount().AmountCents(),
				"currency": aggregate.Amount().Currency(),
			},
		)
		if entryErr != nil {
			return entryErr
		}
		if err = uow.AuditRepository().Add(ctx, entry); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, payout.UpdatedEvent{
		OrderID:    aggregate.OrderID(),
		PayoutID:   aggregate.ID(),
		SupplierID: aggregate.SupplierID(),
		Status:     cmd.Target(),
		Amount:     aggregate.Amount(),
	})
	return nil
}
