package services

import (
	"fmt"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"
)

// CaretakerRefundCeilingCents is the largest refund a caretaker may issue,
// in minor units (200 currency-major-units). Admins have no ceiling.
const CaretakerRefundCeilingCents int64 = 20000

// RefundPolicy decides whether an actor may issue a refund of a given amount.
// The check runs before any audit row is written: a rejected refund leaves
// no trace in the trail.
type RefundPolicy struct{}

// NewRefundPolicy creates the policy.
func NewRefundPolicy() RefundPolicy {
	return RefundPolicy{}
}

// Authorize checks the actor's role and the amount against the refund rules.
//
// Rules:
//   - Only operations actors may issue refunds.
//   - Caretakers are capped at CaretakerRefundCeilingCents; the ceiling itself
//     is allowed, one cent above it is not.
//   - Admins may refund any amount.
func (p RefundPolicy) Authorize(role user.Role, amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}

	if !role.IsOperations() {
		return errs.NewOperationForbiddenErrorWithCause("issue refund",
			fmt.Errorf("role %s may not issue refunds", role))
	}

	if role == user.RoleCaretaker && amount.AmountCents() > CaretakerRefundCeilingCents {
		return errs.NewOperationForbiddenErrorWithCause("issue refund",
			fmt.Errorf("amount %d exceeds caretaker ceiling of %d",
				amount.AmountCents(), CaretakerRefundCeilingCents))
	}

	return nil
}
