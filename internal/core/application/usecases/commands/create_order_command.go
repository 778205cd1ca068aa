package commands

import (
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new customer order.
// The order starts in New status and enters the supplier sourcing flow.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(
//	    kernel.NewUUID(), "ORD-1001", contact, address, price, deliveryFee, &customerID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	code        string
	contact     kernel.Contact
	address     kernel.Address
	price       kernel.Money
	deliveryFee kernel.Money
	customerID  *kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new customer order.
// CustomerID may be nil for guest orders.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	code string,
	contact kernel.Contact,
	address kernel.Address,
	price kernel.Money,
	deliveryFee kernel.Money,
	customerID *kernel.UUID,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCode(code),
		cmd.setContact(contact),
		cmd.setAddress(address),
		cmd.setPrice(price),
		cmd.setDeliveryFee(deliveryFee),
		cmd.setCustomerID(customerID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// Code returns the human-readable order code.
func (c CreateOrderCommand) Code() string { return c.code }

// Contact returns the customer contact details.
func (c CreateOrderCommand) Contact() kernel.Contact { return c.contact }

// Address returns the collection/delivery address.
func (c CreateOrderCommand) Address() kernel.Address { return c.address }

// Price returns the base price.
func (c CreateOrderCommand) Price() kernel.Money { return c.price }

// DeliveryFee returns the delivery fee.
func (c CreateOrderCommand) DeliveryFee() kernel.Money { return c.deliveryFee }

// CustomerID returns the customer's user id, nil for guest orders.
func (c CreateOrderCommand) CustomerID() *kernel.UUID { return c.customerID }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	c.code = code
	return nil
}

func (c *CreateOrderCommand) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	c.contact = contact
	return nil
}

func (c *CreateOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	c.price = price
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	c.deliveryFee = deliveryFee
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	c.customerID = customerID
	return nil
}
