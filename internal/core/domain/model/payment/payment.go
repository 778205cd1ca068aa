// Package payment contains the payment record lifecycle for an order.
// Gateway checkout (Paystack/Ozow redirection) lives outside this core; only
// the resulting payment records are tracked here.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// Status is the settlement state of a payment record.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusPaid
	StatusFailed
	StatusRefunded
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusPending:  "Pending",
		StatusPaid:     "Paid",
		StatusFailed:   "Failed",
		StatusRefunded: "Refunded",
	}
}

// StatusFromString parses a status name as produced by String.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the Status value is valid. StatusUnknown is invalid.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusRefunded {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ErrPaymentIsNotConstructed is returned when a Payment was not created via a factory.
var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")

// Payment is a money-in record against an order. The net revenue collected for
// an order is the sum of its Paid payments minus refund amounts recorded in the
// audit trail.
type Payment struct {
	id          kernel.UUID
	orderID     kernel.UUID
	amount      kernel.Money
	status      Status
	provider    string
	providerRef string

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayment creates a payment record. Provider names the channel
// (e.g. "paystack", "ozow", "cash", "eft"); providerRef is the channel's own
// reference and may be empty for counter sales.
func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	status Status,
	provider string,
	providerRef string,
) (*Payment, error) {
	now := time.Now().UTC()
	return RestorePayment(id, orderID, amount, status, provider, providerRef, now, now)
}

// RestorePayment reconstructs a payment record from persisted state.
func RestorePayment(
	id kernel.UUID,
	orderID kernel.UUID,
	amount kernel.Money,
	status Status,
	provider string,
	providerRef string,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	provider = strings.TrimSpace(provider)

	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if provider == "" {
		return nil, errs.NewValueIsRequiredError("payment provider")
	}

	return &Payment{
		id:            id,
		orderID:       orderID,
		amount:        amount,
		status:        status,
		provider:      provider,
		providerRef:   strings.TrimSpace(providerRef),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payment was created through a factory.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// OrderID returns the order the payment belongs to.
func (p *Payment) OrderID() kernel.UUID { return p.orderID }

// Amount returns the payment amount.
func (p *Payment) Amount() kernel.Money { return p.amount }

// Status returns the settlement state.
func (p *Payment) Status() Status { return p.status }

// Provider returns the payment channel name.
func (p *Payment) Provider() string { return p.provider }

// ProviderRef returns the channel's own reference, possibly empty.
func (p *Payment) ProviderRef() string { return p.providerRef }

// CreatedAt returns the creation timestamp.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }

// UpdateStatus moves the record to a new settlement state.
func (p *Payment) UpdateStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	p.status = to
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdatedEvent is raised after a payment record is written or its status changes.
type UpdatedEvent struct {
	OrderID   kernel.UUID
	PaymentID kernel.UUID
	Status    Status
	Amount    kernel.Money
	Provider  string
}
