// Package payoutrepo persists supplier payouts, the money-out side of an
// order's ledger.
package payoutrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payout"

	"github.com/google/uuid"
)

// PayoutDTO represents the database structure for persisting payouts.
// Status is stored as an int matching the payout.Status enumeration.
type PayoutDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	SupplierID  uuid.UUID `gorm:"type:uuid;index"`
	AmountCents int64
	Currency    string
	Status      int `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for payouts.
func (PayoutDTO) TableName() string {
	return "payouts"
}

func fromDomain(aggregate *payout.Payout) PayoutDTO {
	return PayoutDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		SupplierID:  aggregate.SupplierID().Bytes(),
		AmountCents: aggregate.Amount().AmountCents(),
		Currency:    aggregate.Amount().Currency(),
		Status:      int(aggregate.Status()),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto PayoutDTO) (*payout.Payout, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromBytes(dto.SupplierID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payout.RestorePayout(
		id,
		orderID,
		supplierID,
		amount,
		payout.Status(dto.Status),
		dto.CreatedAt, dto.UpdatedAt,
	)
}
