package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrAcceptQuoteCommandIsNotConstructed = errors.New(
	"AcceptQuoteCommand must be created via NewAcceptQuoteCommand constructor",
)

// AcceptQuoteCommand binds a quoting supplier to the order and fixes the
// agreed price. The status move into SupplierConfirmed is a separate
// ChangeStatus request so the transition table stays the single gate.
type AcceptQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	supplierID kernel.UUID
	price      kernel.Money

	guard guard.ConstructorGuard
}

// NewAcceptQuoteCommand creates a command to accept a supplier's quote.
func NewAcceptQuoteCommand(
	orderID kernel.UUID, actorID kernel.UUID, supplierID kernel.UUID, price kernel.Money,
) (AcceptQuoteCommand, error) {
	cmd := AcceptQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		supplierID.Validate(),
		price.Validate(),
	); err != nil {
		return AcceptQuoteCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.supplierID = supplierID
	cmd.price = price
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptQuoteCommand) Validate() error {
	return c.guard.Validate(ErrAcceptQuoteCommandIsNotConstructed)
}

// OrderID returns the order being bound.
func (c AcceptQuoteCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user accepting the quote.
func (c AcceptQuoteCommand) ActorID() kernel.UUID { return c.actorID }

// SupplierID returns the supplier whose quote is accepted.
func (c AcceptQuoteCommand) SupplierID() kernel.UUID { return c.supplierID }

// Price returns the agreed price.
func (c AcceptQuoteCommand) Price() kernel.Money { return c.price }
