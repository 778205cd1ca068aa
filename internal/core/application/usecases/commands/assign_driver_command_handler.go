package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// AssignDriverCommandHandler binds a driver to an order.
// Only operations staff assign drivers; the delivery leg never self-assigns.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the driver assignment command.
// Publishes order.DriverAssignedEvent after a successful commit.
func (h AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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
		return errs.NewOperationForbiddenErrorWithCause("assign driver",
			fmt.Errorf("role %s may not assign drivers", actor.Role()))
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AssignDriver(cmd.DriverID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.DriverAssignedEvent{
		OrderID:  aggregate.ID(),
		DriverID: cmd.DriverID(),
	})
	return nil
}
