package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"
)

// RecordSupplierStatusCommandHandler records a supplier progress note.
// Only staff of the order's own supplier may post; the ownership check runs
// before anything is written.
type RecordSupplierStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordSupplierStatusCommandHandler creates a handler for supplier progress notes.
func NewRecordSupplierStatusCommandHandler(uowFactory OrderUoWFactory) RecordSupplierStatusCommandHandler {
	return RecordSupplierStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the progress note command.
func (h RecordSupplierStatusCommandHandler) Handle(ctx context.Context, cmd RecordSupplierStatusCommand) error {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if actor.Role() != user.RoleSupplier ||
		aggregate.SupplierID() == nil || !actor.WorksForSupplier(*aggregate.SupplierID()) {
		return errs.NewOperationForbiddenErrorWithCause("record supplier status",
			fmt.Errorf("actor does not act for the order's supplier"))
	}

	payload := map[string]any{"note": cmd.Note()}
	if cmd.Location() != nil {
		if err = aggregate.RecordSupplierLocation(*cmd.Location()); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
		payload["lat"] = cmd.Location().Latitude()
		payload["lng"] = cmd.Location().Longitude()
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.ActorID(), audit.ActionSupplierStatus, payload,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
