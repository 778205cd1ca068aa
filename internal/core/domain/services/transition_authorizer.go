package services

import (
	"fmt"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"
)

// TransitionAuthorizer decides whether an actor may request a status transition
// on an order. Authority is layered on top of the transition table, not merged
// into it: this service answers "may this actor ask", the table answers "is the
// move legal".
//
// The ownership check runs before any transition reasoning. A supplier actor
// who does not own the order receives Forbidden, never InvalidTransition, so
// the error cannot leak the order's current state to a non-owner.
type TransitionAuthorizer struct{}

// NewTransitionAuthorizer creates the authorizer.
func NewTransitionAuthorizer() TransitionAuthorizer {
	return TransitionAuthorizer{}
}

// supplierTargets are the only statuses a supplier actor may request.
func supplierTargets() map[order.Status]struct{} {
	return map[order.Status]struct{}{
		order.InProgress:       {},
		order.ReadyForDelivery: {},
		order.OutForDelivery:   {},
		order.Delivered:        {},
	}
}

// Authorize checks whether the actor may request moving the order to target.
//
// Rules:
//   - Operations actors (admin/caretaker) may request any table-legal transition.
//   - A supplier actor may only act on orders whose supplier matches their own
//     link, and only towards the work-progress statuses.
//   - Customers and drivers have no write authority over order status.
//
// Returns nil when the request may proceed to the transition table, or an
// *errs.OperationForbiddenError otherwise.
func (a TransitionAuthorizer) Authorize(actor *user.User, o *order.Order, target order.Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}

	if actor.Role().IsOperations() {
		return nil
	}

	if actor.Role() == user.RoleSupplier {
		// Ownership before anything else.
		if o.SupplierID() == nil || !actor.WorksForSupplier(*o.SupplierID()) {
			return errs.NewOperationForbiddenErrorWithCause("change order status",
				fmt.Errorf("actor does not act for the order's supplier"))
		}
		if _, ok := supplierTargets()[target]; !ok {
			return errs.NewOperationForbiddenErrorWithCause("change order status",
				fmt.Errorf("suppliers may not move orders to %s", target))
		}
		return nil
	}

	return errs.NewOperationForbiddenErrorWithCause("change order status",
		fmt.Errorf("role %s has no status authority", actor.Role()))
}
