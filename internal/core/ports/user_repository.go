package ports

import (
	"context"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"
)

// UserRepository defines the read contract for platform identities.
// Users are provisioned outside this core; the lifecycle only reads them to
// resolve stakeholders and check authority.
type UserRepository interface {
	// Get retrieves a user by their unique identifier.
	// Returns *errs.ObjectNotFoundError when no such user exists.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// GetByRoles retrieves all users holding any of the given roles.
	GetByRoles(ctx context.Context, roles []user.Role) ([]*user.User, error)

	// GetBySupplierID retrieves the staff of a supplier business.
	GetBySupplierID(ctx context.Context, supplierID kernel.UUID) ([]*user.User, error)

	// GetByDriverID retrieves the staff of a driver business.
	GetByDriverID(ctx context.Context, driverID kernel.UUID) ([]*user.User, error)
}
