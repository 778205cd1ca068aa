package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/guard"
)

var ErrChangeStatusCommandIsNotConstructed = errors.New(
	"ChangeStatusCommand must be created via NewChangeStatusCommand constructor",
)

// ChangeStatusCommand represents a request to move an order to a new lifecycle
// status on behalf of an acting user.
//
// Example:
//
//	cmd, err := NewChangeStatusCommand(orderID, actorID, order.InProgress)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewChangeStatusCommandHandler(uowFactory, publisher)
//	err = handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrOperationForbidden):
//	    // actor has no authority over this order
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // the move is not in the transition table
//	case errors.Is(err, errs.ErrConcurrencyConflict):
//	    // a concurrent writer won; reload and retry
//	}
type ChangeStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actorID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

// NewChangeStatusCommand creates a command to request a status transition.
func NewChangeStatusCommand(
	orderID kernel.UUID, actorID kernel.UUID, target order.Status,
) (ChangeStatusCommand, error) {
	cmd := ChangeStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		target.Validate(),
	); err != nil {
		return ChangeStatusCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.target = target
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ChangeStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeStatusCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c ChangeStatusCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user requesting the move.
func (c ChangeStatusCommand) ActorID() kernel.UUID { return c.actorID }

// Target returns the requested status.
func (c ChangeStatusCommand) Target() order.Status { return c.target }
