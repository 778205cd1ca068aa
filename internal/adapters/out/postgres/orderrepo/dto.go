// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It handles the conversion between the order aggregate and
// its relational representation, including the optimistic-lock version column.
package orderrepo

import (
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored as an int matching the order.Status enumeration; the
// version column backs optimistic locking on updates.
type OrderDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"uniqueIndex"`

	ContactName  string
	ContactPhone string
	ContactEmail string

	AddressLine1      string
	AddressSuburb     string
	AddressCity       string
	AddressPostalCode string

	PriceCents       int64
	DeliveryFeeCents int64
	Currency         string

	Status int `gorm:"index"`

	CustomerID  *uuid.UUID `gorm:"type:uuid;index"`
	SupplierID  *uuid.UUID `gorm:"type:uuid;index"`
	CaretakerID *uuid.UUID `gorm:"type:uuid"`
	DriverID    *uuid.UUID `gorm:"type:uuid;index"`

	CustomerLat        *float64
	CustomerLng        *float64
	CustomerAccuracyM  *float64
	CustomerRecordedAt *time.Time

	SupplierLat        *float64
	SupplierLng        *float64
	SupplierAccuracyM  *float64
	SupplierRecordedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:   aggregate.ID().Bytes(),
		Code: aggregate.Code(),

		ContactName:  aggregate.Contact().Name(),
		ContactPhone: aggregate.Contact().Phone(),
		ContactEmail: aggregate.Contact().Email(),

		AddressLine1:      aggregate.Address().Line1(),
		AddressSuburb:     aggregate.Address().Suburb(),
		AddressCity:       aggregate.Address().City(),
		AddressPostalCode: aggregate.Address().PostalCode(),

		PriceCents:       aggregate.Price().AmountCents(),
		DeliveryFeeCents: aggregate.DeliveryFee().AmountCents(),
		Currency:         aggregate.Price().Currency(),

		Status: int(aggregate.Status()),

		CustomerID:  uuidPtr(aggregate.CustomerID()),
		SupplierID:  uuidPtr(aggregate.SupplierID()),
		CaretakerID: uuidPtr(aggregate.CaretakerID()),
		DriverID:    uuidPtr(aggregate.DriverID()),

		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),
	}

	if p := aggregate.CustomerLocation(); p != nil {
		dto.CustomerLat, dto.CustomerLng, dto.CustomerAccuracyM, dto.CustomerRecordedAt = geoColumns(p)
	}
	if p := aggregate.SupplierLocation(); p != nil {
		dto.SupplierLat, dto.SupplierLng, dto.SupplierAccuracyM, dto.SupplierRecordedAt = geoColumns(p)
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	contact, err := kernel.NewContact(dto.ContactName, dto.ContactPhone, dto.ContactEmail)
	if err != nil {
		return nil, err
	}

	address, err := kernel.NewAddress(
		dto.AddressLine1, dto.AddressSuburb, dto.AddressCity, dto.AddressPostalCode)
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.PriceCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := kernel.NewMoney(dto.DeliveryFeeCents, dto.Currency)
	if err != nil {
		return nil, err
	}

	customerID, err := kernelUUIDPtr(dto.CustomerID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernelUUIDPtr(dto.SupplierID)
	if err != nil {
		return nil, err
	}
	caretakerID, err := kernelUUIDPtr(dto.CaretakerID)
	if err != nil {
		return nil, err
	}
	driverID, err := kernelUUIDPtr(dto.DriverID)
	if err != nil {
		return nil, err
	}

	customerLocation, err := geoFromColumns(
		dto.CustomerLat, dto.CustomerLng, dto.CustomerAccuracyM, dto.CustomerRecordedAt)
	if err != nil {
		return nil, err
	}
	supplierLocation, err := geoFromColumns(
		dto.SupplierLat, dto.SupplierLng, dto.SupplierAccuracyM, dto.SupplierRecordedAt)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Code,
		contact,
		address,
		price,
		deliveryFee,
		order.Status(dto.Status),
		customerID, supplierID, caretakerID, driverID,
		customerLocation, supplierLocation,
		dto.CreatedAt, dto.UpdatedAt,
		dto.Version,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelUUIDPtr(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func geoColumns(p *kernel.GeoPoint) (*float64, *float64, *float64, *time.Time) {
	lat := p.Latitude()
	lng := p.Longitude()
	accuracy := p.AccuracyM()
	recordedAt := p.RecordedAt()
	return &lat, &lng, &accuracy, &recordedAt
}

func geoFromColumns(lat, lng, accuracyM *float64, recordedAt *time.Time) (*kernel.GeoPoint, error) {
	if lat == nil || lng == nil {
		return nil, nil
	}

	var accuracy float64
	if accuracyM != nil {
		accuracy = *accuracyM
	}
	var at time.Time
	if recordedAt != nil {
		at = *recordedAt
	}

	point, err := kernel.NewGeoPoint(*lat, *lng, accuracy, at)
	if err != nil {
		return nil, err
	}
	return &point, nil
}
