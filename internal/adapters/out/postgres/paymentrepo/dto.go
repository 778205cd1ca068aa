// Package paymentrepo persists payment records, the money-in side of an
// order's ledger.
package paymentrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payment"

	"github.com/google/uuid"
)

// PaymentDTO represents the database structure for persisting payment records.
// Status is stored as an int matching the payment.Status enumeration.
type PaymentDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;index"`
	AmountCents int64
	Currency    string
	Status      int `gorm:"index"`
	Provider    string
	ProviderRef string
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`
}

// TableName specifies the database table name for payment records.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(aggregate *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:          aggregate.ID().Bytes(),
		OrderID:     aggregate.OrderID().Bytes(),
		AmountCents: aggregate.Amount().AmountCents(),
		Currency:    aggregate.Amount().Currency(),
		Status:      int(aggregate.Status()),
		Provider:    aggregate.Provider(),
		ProviderRef: aggregate.ProviderRef(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.AmountCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		amount,
		payment.Status(dto.Status),
		dto.Provider,
		dto.ProviderRef,
		dto.CreatedAt, dto.UpdatedAt,
	)
}
