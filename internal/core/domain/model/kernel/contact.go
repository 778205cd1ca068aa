package kernel

import (
	"errors"
	"strings"

	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

// ErrContactIsNotConstructed is returned when attempting to use an improperly
// initialized Contact. Contacts must be created via NewContact.
var ErrContactIsNotConstructed = errs.NewValueIsRequiredError(
	"contact must be created via NewContact constructor")

// Contact holds the customer-facing contact details captured on an order.
// Name is mandatory; at least one of phone or email must be provided so the
// order remains reachable.
type Contact struct { //nolint:recvcheck //using for validation
	name  string
	phone string
	email string

	guard guard.ConstructorGuard
}

// NewContact creates a validated Contact.
func NewContact(name, phone, email string) (Contact, error) {
	c := Contact{
		guard: guard.NewConstructorGuard(),
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact name")
	}
	if strings.TrimSpace(phone) == "" && strings.TrimSpace(email) == "" {
		return Contact{}, errs.NewValueIsRequiredError("contact phone or email")
	}

	c.name = name
	c.phone = strings.TrimSpace(phone)
	c.email = strings.TrimSpace(email)
	return c, nil
}

// Validate checks if the Contact was properly constructed.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// Name returns the contact's display name.
func (c Contact) Name() string { return c.name }

// Phone returns the contact's phone number, possibly empty.
func (c Contact) Phone() string { return c.phone }

// Email returns the contact's email address, possibly empty.
func (c Contact) Email() string { return c.email }

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address. Addresses must be created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the collection/delivery address captured on an order.
type Address struct { //nolint:recvcheck //using for validation
	line1      string
	suburb     string
	city       string
	postalCode string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. Line1 and city are mandatory.
func NewAddress(line1, suburb, city, postalCode string) (Address, error) {
	a := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setLine1(line1),
		a.setCity(city),
	); err != nil {
		return Address{}, err
	}

	a.suburb = strings.TrimSpace(suburb)
	a.postalCode = strings.TrimSpace(postalCode)
	return a, nil
}

// Validate checks if the Address was properly constructed.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Line1 returns the street line of the address.
func (a Address) Line1() string { return a.line1 }

// Suburb returns the suburb, possibly empty.
func (a Address) Suburb() string { return a.suburb }

// City returns the city.
func (a Address) City() string { return a.city }

// PostalCode returns the postal code, possibly empty.
func (a Address) PostalCode() string { return a.postalCode }

func (a *Address) setLine1(line1 string) error {
	line1 = strings.TrimSpace(line1)
	if line1 == "" {
		return errs.NewValueIsRequiredError("address line1")
	}
	a.line1 = line1
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("address city")
	}
	a.city = city
	return nil
}
