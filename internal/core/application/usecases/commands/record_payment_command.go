package commands

import (
	"errors"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payment"
	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

var ErrRecordPaymentCommandIsNotConstructed = errors.New(
	"RecordPaymentCommand must be created via NewRecordPaymentCommand constructor",
)

// RecordPaymentCommand represents a payment record update arriving from a
// gateway webhook or operations staff. The same command serves both the first
// sighting of a payment and later settlement updates; the handler upserts on
// the payment id.
type RecordPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID   kernel.UUID
	orderID     kernel.UUID
	amount      kernel.Money
	status      payment.Status
	provider    string
	providerRef string

	guard guard.ConstructorGuard
}

// NewRecordPaymentCommand creates a command to record a payment update.
func NewRecordPaymentCommand(
	paymentID kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	status payment.Status,
	provider string,
	providerRef string,
) (RecordPaymentCommand, error) {
	cmd := RecordPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		paymentID.Validate(),
		orderID.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return RecordPaymentCommand{}, err
	}

	provider = strings.TrimSpace(provider)
	if provider == "" {
		return RecordPaymentCommand{}, errs.NewValueIsRequiredError("payment provider")
	}

	cmd.paymentID = paymentID
	cmd.orderID = orderID
	cmd.amount = amount
	cmd.status = status
	cmd.provider = provider
	cmd.providerRef = strings.TrimSpace(providerRef)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRecordPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment record's identifier.
func (c RecordPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// OrderID returns the order the payment belongs to.
func (c RecordPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// Amount returns the payment amount.
func (c RecordPaymentCommand) Amount() kernel.Money { return c.amount }

// Status returns the settlement state being recorded.
func (c RecordPaymentCommand) Status() payment.Status { return c.status }

// Provider returns the payment channel name.
func (c RecordPaymentCommand) Provider() string { return c.provider }

// ProviderRef returns the channel's own reference, possibly empty.
func (c RecordPaymentCommand) ProviderRef() string { return c.providerRef }
