package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsTerminal is returned when mutating an order in a terminal status.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Order is the aggregate root of the fulfilment domain. It tracks a customer
// job from creation through supplier work and delivery to closure.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and human-readable code
//   - Is always created in New status; every later status is reachable from
//     New via the transition table in status.go
//   - Status changes only through ChangeStatus, which consults the table
//   - Is never hard-deleted: Closed and Canceled orders retain their row
//   - Carries an optimistic-lock version that persistence bumps on update
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods.
type Order struct {
	id   kernel.UUID
	code string

	price       kernel.Money
	deliveryFee kernel.Money

	status Status

	customerID  *kernel.UUID
	supplierID  *kernel.UUID
	caretakerID *kernel.UUID
	driverID    *kernel.UUID

	contact kernel.Contact
	address kernel.Address

	customerLocation *kernel.GeoPoint
	supplierLocation *kernel.GeoPoint

	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder creates a new Order in New status. This is the only way to create
// an order for a fresh job; reconstruction from persistence uses RestoreOrder.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - code: human-readable order code shown to customers and staff
//   - contact: customer contact details
//   - address: collection/delivery address
//   - price: base price in minor units
//   - deliveryFee: delivery fee in minor units
//   - customerID: the customer's user id, nil for guest orders
//
// Returns the created order, or a validation error if any parameter is invalid.
func NewOrder(
	id kernel.UUID,
	code string,
	contact kernel.Contact,
	address kernel.Address,
	price kernel.Money,
	deliveryFee kernel.Money,
	customerID *kernel.UUID,
) (*Order, error) {
	now := time.Now().UTC()
	o := &Order{
		status:        New,
		createdAt:     now,
		updatedAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setContact(contact),
		o.setAddress(address),
		o.setPrice(price),
		o.setDeliveryFee(deliveryFee),
		o.setCustomerID(customerID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persisted state without running the
// creation-time rules. Used exclusively by repositories; the stored state is
// trusted to have been valid when written, but field-level validation still runs.
func RestoreOrder(
	id kernel.UUID,
	code string,
	contact kernel.Contact,
	address kernel.Address,
	price kernel.Money,
	deliveryFee kernel.Money,
	status Status,
	customerID, supplierID, caretakerID, driverID *kernel.UUID,
	customerLocation, supplierLocation *kernel.GeoPoint,
	createdAt, updatedAt time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		createdAt:        createdAt,
		updatedAt:        updatedAt,
		customerLocation: customerLocation,
		supplierLocation: supplierLocation,
		isConstructed:    true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setContact(contact),
		o.setAddress(address),
		o.setPrice(price),
		o.setDeliveryFee(deliveryFee),
		o.setCustomerID(customerID),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	o.supplierID = supplierID
	o.caretakerID = caretakerID
	o.driverID = driverID
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// Code returns the human-readable order code.
func (o *Order) Code() string { return o.code }

// Price returns the base price.
func (o *Order) Price() kernel.Money { return o.price }

// DeliveryFee returns the delivery fee.
func (o *Order) DeliveryFee() kernel.Money { return o.deliveryFee }

// Total returns price plus delivery fee.
func (o *Order) Total() (kernel.Money, error) {
	return o.price.Add(o.deliveryFee)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CustomerID returns the customer's user id, nil for guest orders.
func (o *Order) CustomerID() *kernel.UUID { return o.customerID }

// SupplierID returns the assigned supplier's id, nil if unassigned.
func (o *Order) SupplierID() *kernel.UUID { return o.supplierID }

// CaretakerID returns the managing caretaker's id, nil if unassigned.
func (o *Order) CaretakerID() *kernel.UUID { return o.caretakerID }

// DriverID returns the assigned driver's id, nil if unassigned.
func (o *Order) DriverID() *kernel.UUID { return o.driverID }

// Contact returns the customer contact details.
func (o *Order) Contact() kernel.Contact { return o.contact }

// Address returns the collection/delivery address.
func (o *Order) Address() kernel.Address { return o.address }

// CustomerLocation returns the customer's recorded geolocation, nil if never captured.
func (o *Order) CustomerLocation() *kernel.GeoPoint { return o.customerLocation }

// SupplierLocation returns the supplier's recorded geolocation, nil if never captured.
func (o *Order) SupplierLocation() *kernel.GeoPoint { return o.supplierLocation }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation timestamp.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Version returns the optimistic-lock version. Persistence compares it on
// update and bumps it on success; a stale version means a concurrent writer won.
func (o *Order) Version() int64 { return o.version }

// ChangeStatus moves the order to the target status.
//
// The transition table in status.go is the single source of truth for legality;
// role authority is checked by the caller before this method (see
// services.TransitionAuthorizer) so the two rules stay independently testable.
//
// Returns *InvalidTransitionError naming the from→to pair if the move is not
// in the table. On success the order's status and updatedAt are changed.
func (o *Order) ChangeStatus(to Status) error {
	newStatus, err := o.status.TransitionTo(to)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.touch()
	return nil
}

// AssignSupplier binds a supplier to the order and fixes the agreed price.
// Used by the quote-acceptance flow. Fails on terminal orders.
func (o *Order) AssignSupplier(supplierID kernel.UUID, price kernel.Money) error {
	if err := supplierID.Validate(); err != nil {
		return err
	}
	if err := price.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	o.supplierID = &supplierID
	o.price = price
	o.touch()
	return nil
}

// AssignCaretaker records the operations staff member managing the order.
func (o *Order) AssignCaretaker(caretakerID kernel.UUID) error {
	if err := caretakerID.Validate(); err != nil {
		return err
	}

	o.caretakerID = &caretakerID
	o.touch()
	return nil
}

// AssignDriver binds a driver to the order for the delivery leg.
// Reassignment is allowed; terminal orders cannot take a driver.
func (o *Order) AssignDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return ErrOrderIsTerminal
	}

	o.driverID = &driverID
	o.touch()
	return nil
}

// RecordCustomerLocation stores the customer's device location.
func (o *Order) RecordCustomerLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.customerLocation = &point
	o.touch()
	return nil
}

// RecordSupplierLocation stores the supplier's device location.
func (o *Order) RecordSupplierLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.supplierLocation = &point
	o.touch()
	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errs.NewValueIsRequiredError("order code")
	}
	o.code = code
	return nil
}

func (o *Order) setContact(contact kernel.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return err
	}
	o.price = price
	return nil
}

func (o *Order) setDeliveryFee(deliveryFee kernel.Money) error {
	if err := deliveryFee.Validate(); err != nil {
		return err
	}
	if deliveryFee.Currency() != o.price.Currency() {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("currency %s does not match price currency %s",
				deliveryFee.Currency(), o.price.Currency()))
	}
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewVersionIsInvalidError("order version",
			fmt.Errorf("%d is not a positive version", version))
	}
	o.version = version
	return nil
}
