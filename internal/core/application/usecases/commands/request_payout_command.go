package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrRequestPayoutCommandIsNotConstructed = errors.New(
	"RequestPayoutCommand must be created via NewRequestPayoutCommand constructor",
)

// RequestPayoutCommand represents a request to schedule a supplier payout
// against an order. The payout is created Pending and released separately.
type RequestPayoutCommand struct { //nolint:recvcheck //using for validation
	payoutID   kernel.UUID
	orderID    kernel.UUID
	actorID    kernel.UUID
	supplierID kernel.UUID
	amount     kernel.Money

	guard guard.ConstructorGuard
}

// NewRequestPayoutCommand creates a command to schedule a payout.
func NewRequestPayoutCommand(
	payoutID kernel.UUID,
	orderID kernel.UUID,
	actorID kernel.UUID,
	supplierID kernel.UUID,
	amount kernel.Money,
) (RequestPayoutCommand, error) {
	cmd := RequestPayoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		payoutID.Validate(),
		orderID.Validate(),
		actorID.Validate(),
		supplierID.Validate(),
		amount.Validate(),
	); err != nil {
		return RequestPayoutCommand{}, err
	}

	cmd.payoutID = payoutID
	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.supplierID = supplierID
	cmd.amount = amount
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestPayoutCommand) Validate() error {
	return c.guard.Validate(ErrRequestPayoutCommandIsNotConstructed)
}

// PayoutID returns the identifier for the new payout.
func (c RequestPayoutCommand) PayoutID() kernel.UUID { return c.payoutID }

// OrderID returns the order the payout settles.
func (c RequestPayoutCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user scheduling the payout.
func (c RequestPayoutCommand) ActorID() kernel.UUID { return c.actorID }

// SupplierID returns the supplier being paid.
func (c RequestPayoutCommand) SupplierID() kernel.UUID { return c.supplierID }

// Amount returns the payout amount.
func (c RequestPayoutCommand) Amount() kernel.Money { return c.amount }
