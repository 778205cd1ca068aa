package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/guard"
)

var ErrRequestQuoteCommandIsNotConstructed = errors.New(
	"RequestQuoteCommand must be created via NewRequestQuoteCommand constructor",
)

// RequestQuoteCommand asks a supplier to price an order during sourcing.
// Several quotes may be requested for the same order; acceptance binds one.
type RequestQuoteCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actorID    kernel.UUID
	supplierID kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewRequestQuoteCommand creates a command to request a quote. Note may be empty.
func NewRequestQuoteCommand(
	orderID kernel.UUID, actorID kernel.UUID, supplierID kernel.UUID, note string,
) (RequestQuoteCommand, error) {
	cmd := RequestQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		supplierID.Validate(),
	); err != nil {
		return RequestQuoteCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.supplierID = supplierID
	cmd.note = strings.TrimSpace(note)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestQuoteCommand) Validate() error {
	return c.guard.Validate(ErrRequestQuoteCommandIsNotConstructed)
}

// OrderID returns the order being priced.
func (c RequestQuoteCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user requesting the quote.
func (c RequestQuoteCommand) ActorID() kernel.UUID { return c.actorID }

// SupplierID returns the supplier asked to quote.
func (c RequestQuoteCommand) SupplierID() kernel.UUID { return c.supplierID }

// Note returns the free-form context for the supplier, possibly empty.
func (c RequestQuoteCommand) Note() string { return c.note }
