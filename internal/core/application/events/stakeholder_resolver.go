package events

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// Stakeholders are the resolved parties of one order. Any field may be nil or
// empty: a guest order has no customer record, an unassigned order has no
// supplier or driver staff. Fan-out silently skips missing parties.
type Stakeholders struct {
	Customer      *user.User
	SupplierStaff []*user.User
	DriverStaff   []*user.User
	Operations    []*user.User
}

// StakeholderResolver maps an order's party links to user records.
type StakeholderResolver struct {
	users ports.UserRepository
}

// NewStakeholderResolver creates a resolver over the given user repository.
func NewStakeholderResolver(users ports.UserRepository) StakeholderResolver {
	return StakeholderResolver{users: users}
}

// Resolve loads the order's stakeholders. A dangling customer link resolves to
// nil rather than an error so fan-out can continue for the remaining parties.
func (r StakeholderResolver) Resolve(ctx context.Context, o *order.Order) (Stakeholders, error) {
	if err := o.Validate(); err != nil {
		return Stakeholders{}, err
	}

	var s Stakeholders

	if o.CustomerID() != nil {
		customer, err := r.users.Get(ctx, *o.CustomerID())
		switch {
		case err == nil:
			s.Customer = customer
		case errors.Is(err, errs.ErrObjectNotFound):
			// Dangling customer link; fan-out continues for the other parties.
		default:
			return Stakeholders{}, err
		}
	}

	if o.SupplierID() != nil {
		staff, err := r.users.GetBySupplierID(ctx, *o.SupplierID())
		if err != nil {
			return Stakeholders{}, err
		}
		s.SupplierStaff = staff
	}

	if o.DriverID() != nil {
		staff, err := r.users.GetByDriverID(ctx, *o.DriverID())
		if err != nil {
			return Stakeholders{}, err
		}
		s.DriverStaff = staff
	}

	operations, err := r.users.GetByRoles(ctx, []user.Role{user.RoleAdmin, user.RoleCaretaker})
	if err != nil {
		return Stakeholders{}, err
	}
	s.Operations = operations

	return s, nil
}
