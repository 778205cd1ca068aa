package userrepo

import (
	"context"
	"errors"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Get retrieves a user by ID.
func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByRoles retrieves all users holding any of the given roles.
func (r *GormUserRepository) GetByRoles(ctx context.Context, roles []user.Role) ([]*user.User, error) {
	ints := make([]int, 0, len(roles))
	for _, role := range roles {
		if err := role.Validate(); err != nil {
			return nil, err
		}
		ints = append(ints, int(role))
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "role IN ?", ints).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetBySupplierID retrieves the staff of a supplier business.
func (r *GormUserRepository) GetBySupplierID(
	ctx context.Context, supplierID kernel.UUID,
) ([]*user.User, error) {
	if err := supplierID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "supplier_id = ?", supplierID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByDriverID retrieves the staff of a driver business.
func (r *GormUserRepository) GetByDriverID(
	ctx context.Context, driverID kernel.UUID,
) ([]*user.User, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "driver_id = ?", driverID.Bytes()).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []UserDTO) ([]*user.User, error) {
	users := make([]*user.User, 0, len(dtos))
	for _, dto := range dtos {
		u, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}
