// Package payout contains the supplier payout lifecycle: money scheduled and
// released from the platform to a supplier for completed work.
package payout

import (
	"errors"
	"fmt"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// Status is the release state of a payout.
type Status int

const (
	StatusUnknown Status = iota

	// StatusPending means the payout is scheduled and awaiting approval.
	StatusPending

	// StatusReleased means the payout has been paid to the supplier. Terminal.
	StatusReleased

	// StatusFailed means the payout could not be processed. Terminal.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusPending:  "Pending",
		StatusReleased: "Released",
		StatusFailed:   "Failed",
	}
}

// StatusFromString parses a status name as produced by String.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != StatusUnknown && name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("payout status",
		fmt.Errorf("%q is not a valid payout status", s))
}

// Validate checks if the Status value is valid. StatusUnknown is invalid.
func (s Status) Validate() error {
	if s <= StatusUnknown || s > StatusFailed {
		return errs.NewValueIsInvalidErrorWithCause("payout status is invalid",
			fmt.Errorf("%d is not a valid payout status", s))
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

// ErrPayoutIsNotConstructed is returned when a Payout was not created via a factory.
var ErrPayoutIsNotConstructed = errors.New("Payout must be created via NewPayout or RestorePayout")

// ErrPayoutIsSettled is returned when updating a payout that already reached
// a terminal state.
var ErrPayoutIsSettled = errors.New("payout is already settled")

// Payout is money owed by the platform to a supplier for one order.
// A payout is always created Pending; Released and Failed are terminal.
type Payout struct {
	id         kernel.UUID
	orderID    kernel.UUID
	supplierID kernel.UUID
	amount     kernel.Money
	status     Status

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewPayout schedules a payout in Pending status.
func NewPayout(
	id kernel.UUID,
	orderID kernel.UUID,
	supplierID kernel.UUID,
	amount kernel.Money,
) (*Payout, error) {
	now := time.Now().UTC()
	return RestorePayout(id, orderID, supplierID, amount, StatusPending, now, now)
}

// RestorePayout reconstructs a payout from persisted state.
func RestorePayout(
	id kernel.UUID,
	orderID kernel.UUID,
	supplierID kernel.UUID,
	amount kernel.Money,
	status Status,
	createdAt, updatedAt time.Time,
) (*Payout, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		supplierID.Validate(),
		amount.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payout{
		id:            id,
		orderID:       orderID,
		supplierID:    supplierID,
		amount:        amount,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Payout was created through a factory.
func (p *Payout) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPayoutIsNotConstructed
	}
	return nil
}

// ID returns the payout's unique identifier.
func (p *Payout) ID() kernel.UUID { return p.id }

// OrderID returns the order the payout settles.
func (p *Payout) OrderID() kernel.UUID { return p.orderID }

// SupplierID returns the supplier being paid.
func (p *Payout) SupplierID() kernel.UUID { return p.supplierID }

// Amount returns the payout amount.
func (p *Payout) Amount() kernel.Money { return p.amount }

// Status returns the release state.
func (p *Payout) Status() Status { return p.status }

// CreatedAt returns the creation timestamp.
func (p *Payout) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (p *Payout) UpdatedAt() time.Time { return p.updatedAt }

// UpdateStatus moves the payout to Released or Failed.
// Payouts already settled cannot change again.
func (p *Payout) UpdateStatus(to Status) error {
	if err := to.Validate(); err != nil {
		return err
	}
	if p.status != StatusPending {
		return ErrPayoutIsSettled
	}
	if to == StatusPending {
		return errs.NewValueIsInvalidError("payout cannot return to pending")
	}

	p.status = to
	p.updatedAt = time.Now().UTC()
	return nil
}

// UpdatedEvent is raised after a payout is scheduled or its status changes.
type UpdatedEvent struct {
	OrderID    kernel.UUID
	PayoutID   kernel.UUID
	SupplierID kernel.UUID
	Status     Status
	Amount     kernel.Money
}
