package services

import (
	"fmt"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/pkg/errs"
)

// PayoutPolicy guards payout scheduling for an order.
//
// Two rules apply at schedule time: the payout must go to the order's own
// supplier, and the order's cumulative non-failed payout total (existing plus
// requested) must not exceed the order's total price. Failed payouts release
// their share back to the budget.
type PayoutPolicy struct{}

// NewPayoutPolicy creates the policy.
func NewPayoutPolicy() PayoutPolicy {
	return PayoutPolicy{}
}

// Authorize checks a requested payout against the order and its existing payouts.
func (p PayoutPolicy) Authorize(
	o *order.Order,
	supplierID kernel.UUID,
	requested kernel.Money,
	existing []*payout.Payout,
) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := supplierID.Validate(); err != nil {
		return err
	}
	if err := requested.Validate(); err != nil {
		return err
	}

	if o.SupplierID() == nil || !o.SupplierID().IsEqual(supplierID) {
		return errs.NewOperationForbiddenErrorWithCause("request payout",
			fmt.Errorf("supplier does not match the order's supplier"))
	}

	total, err := o.Total()
	if err != nil {
		return err
	}

	committed := requested.AmountCents()
	for _, existingPayout := range existing {
		if existingPayout.Status() == payout.StatusFailed {
			continue
		}
		committed += existingPayout.Amount().AmountCents()
	}

	if committed > total.AmountCents() {
		return errs.NewValueIsOutOfRangeError(
			"payout total for order", committed, 0, total.AmountCents())
	}

	return nil
}
