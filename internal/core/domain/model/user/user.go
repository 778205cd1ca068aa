package user

import (
	"errors"
	"fmt"
	"strings"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

// Role identifies what a user is allowed to do across the platform.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer places orders. Customers have no write authority over
	// order status.
	RoleCustomer

	// RoleSupplier performs the work. Supplier users are linked to a supplier
	// business via SupplierID.
	RoleSupplier

	// RoleDriver handles the delivery leg. Driver users are linked to a driver
	// business via DriverID.
	RoleDriver

	// RoleCaretaker is day-to-day operations staff with a capped refund ceiling.
	RoleCaretaker

	// RoleAdmin is operations staff with unrestricted authority.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:   "Unknown",
		RoleCustomer:  "Customer",
		RoleSupplier:  "Supplier",
		RoleDriver:    "Driver",
		RoleCaretaker: "Caretaker",
		RoleAdmin:     "Admin",
	}
}

// Validate checks if the Role value is valid. RoleUnknown is invalid.
func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the name of the role, or "Unknown" for invalid values.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// IsOperations reports whether the role belongs to operations staff
// (admin or caretaker).
func (r Role) IsOperations() bool {
	return r == RoleAdmin || r == RoleCaretaker
}

// ErrUserIsNotConstructed is returned when a User was not created via NewUser.
var ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")

// User is a platform identity. Supplier and driver staff carry a link to the
// business they act for; that link is what the ownership checks compare against.
type User struct {
	id         kernel.UUID
	name       string
	email      string
	role       Role
	supplierID *kernel.UUID
	driverID   *kernel.UUID

	isConstructed bool
}

// NewUser creates a validated User. SupplierID is required for supplier users
// and driverID for driver users; both must be nil for every other role.
func NewUser(
	id kernel.UUID,
	name string,
	email string,
	role Role,
	supplierID *kernel.UUID,
	driverID *kernel.UUID,
) (*User, error) {
	u := &User{isConstructed: true}

	if err := errors.Join(
		u.setID(id),
		u.setName(name),
		u.setRole(role),
	); err != nil {
		return nil, err
	}
	u.email = strings.TrimSpace(email)

	if role == RoleSupplier && supplierID == nil {
		return nil, errs.NewValueIsRequiredError("supplier user must carry supplierID")
	}
	if role == RoleDriver && driverID == nil {
		return nil, errs.NewValueIsRequiredError("driver user must carry driverID")
	}
	if role != RoleSupplier && supplierID != nil {
		return nil, errs.NewValueIsInvalidError("supplierID on non-supplier user")
	}
	if role != RoleDriver && driverID != nil {
		return nil, errs.NewValueIsInvalidError("driverID on non-driver user")
	}

	u.supplierID = supplierID
	u.driverID = driverID
	return u, nil
}

// Validate ensures the User was created through NewUser.
func (u *User) Validate() error {
	if u == nil || !u.isConstructed {
		return ErrUserIsNotConstructed
	}
	return nil
}

// ID returns the user's unique identifier.
func (u *User) ID() kernel.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address, possibly empty.
func (u *User) Email() string { return u.email }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// SupplierID returns the linked supplier business id, nil unless the user is supplier staff.
func (u *User) SupplierID() *kernel.UUID { return u.supplierID }

// DriverID returns the linked driver business id, nil unless the user is driver staff.
func (u *User) DriverID() *kernel.UUID { return u.driverID }

// WorksForSupplier reports whether the user is staff of the given supplier.
func (u *User) WorksForSupplier(supplierID kernel.UUID) bool {
	return u.supplierID != nil && u.supplierID.IsEqual(supplierID)
}

func (u *User) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	u.id = id
	return nil
}

func (u *User) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("user name")
	}
	u.name = name
	return nil
}

func (u *User) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	u.role = role
	return nil
}
