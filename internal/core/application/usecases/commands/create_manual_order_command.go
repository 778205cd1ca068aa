package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrCreateManualOrderCommandIsNotConstructed = errors.New(
	"CreateManualOrderCommand must be created via NewCreateManualOrderCommand constructor",
)

// CreateManualOrderCommand represents an operations-recorded counter sale:
// the customer paid in person (cash, EFT, card) and staff capture the order
// after the fact. The order is created together with a settled payment record.
type CreateManualOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	actorID     kernel.UUID
	code        string
	contact     kernel.Contact
	address     kernel.Address
	price       kernel.Money
	deliveryFee kernel.Money
	paymentID   kernel.UUID
	provider    string
	providerRef string

	guard guard.ConstructorGuard
}

// NewCreateManualOrderCommand creates a command to record a counter sale.
// Provider names the channel used at the counter (e.g. "cash", "eft", "card");
// providerRef may be empty.
func NewCreateManualOrderCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	code string,
	contact kernel.Contact,
	address kernel.Address,
	price kernel.Money,
	deliveryFee kernel.Money,
	paymentID kernel.UUID,
	provider string,
	providerRef string,
) (CreateManualOrderCommand, error) {
	cmd := CreateManualOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		contact.Validate(),
		address.Validate(),
		price.Validate(),
		deliveryFee.Validate(),
		paymentID.Validate(),
	); err != nil {
		return CreateManualOrderCommand{}, err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return CreateManualOrderCommand{}, errs.NewValueIsRequiredError("order code")
	}
	provider = strings.TrimSpace(provider)
	if provider == "" {
		return CreateManualOrderCommand{}, errs.NewValueIsRequiredError("payment provider")
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.code = code
	cmd.contact = contact
	cmd.address = address
	cmd.price = price
	cmd.deliveryFee = deliveryFee
	cmd.paymentID = paymentID
	cmd.provider = provider
	cmd.providerRef = strings.TrimSpace(providerRef)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateManualOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateManualOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateManualOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the operations user recording the sale.
func (c CreateManualOrderCommand) ActorID() kernel.UUID { return c.actorID }

// Code returns the human-readable order code.
func (c CreateManualOrderCommand) Code() string { return c.code }

// Contact returns the customer contact details.
func (c CreateManualOrderCommand) Contact() kernel.Contact { return c.contact }

// Address returns the collection/delivery address.
func (c CreateManualOrderCommand) Address() kernel.Address { return c.address }

// Price returns the base price.
func (c CreateManualOrderCommand) Price() kernel.Money { return c.price }

// DeliveryFee returns the delivery fee.
func (c CreateManualOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }

// PaymentID returns the identifier for the settled payment record.
func (c CreateManualOrderCommand) PaymentID() kernel.UUID { return c.paymentID }

// Provider returns the counter payment channel.
func (c CreateManualOrderCommand) Provider() string { return c.provider }

// ProviderRef returns the channel's own reference, possibly empty.
func (c CreateManualOrderCommand) ProviderRef() string { return c.providerRef }
