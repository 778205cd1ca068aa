// Package userrepo reads platform identities. Users are provisioned by an
// outside system; the lifecycle core only queries them, so the repository has
// no write operations.
package userrepo

import (
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"

	"github.com/google/uuid"
)

// UserDTO represents the database structure of platform identities.
// Role is stored as an int matching the user.Role enumeration.
type UserDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Email      string
	Role       int        `gorm:"index"`
	SupplierID *uuid.UUID `gorm:"type:uuid;index"`
	DriverID   *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

func toDomain(dto UserDTO) (*user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var supplierID *kernel.UUID
	if dto.SupplierID != nil {
		sID, sErr := kernel.UUIDFromBytes((*dto.SupplierID)[:])
		if sErr != nil {
			return nil, sErr
		}
		supplierID = &sID
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if dErr != nil {
			return nil, dErr
		}
		driverID = &dID
	}

	return user.NewUser(id, dto.Name, dto.Email, user.Role(dto.Role), supplierID, driverID)
}
