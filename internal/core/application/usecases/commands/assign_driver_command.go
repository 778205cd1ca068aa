package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand represents a request to bind a driver to an order for
// the delivery leg. Reassignment before delivery is allowed.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actorID  kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a command to assign a driver to an order.
func NewAssignDriverCommand(
	orderID kernel.UUID, actorID kernel.UUID, driverID kernel.UUID,
) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		driverID.Validate(),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.driverID = driverID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the order taking the driver.
func (c AssignDriverCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user performing the assignment.
func (c AssignDriverCommand) ActorID() kernel.UUID { return c.actorID }

// DriverID returns the driver business being assigned.
func (c AssignDriverCommand) DriverID() kernel.UUID { return c.driverID }
