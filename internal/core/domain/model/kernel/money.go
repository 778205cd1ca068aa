package kernel

import (
	"errors"
	"fmt"

	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

// DefaultCurrency is the ISO 4217 code used when no currency is supplied.
// The platform settles in South African rand.
const DefaultCurrency = "ZAR"

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly
// initialized Money value. Money must be created via NewMoney or ZeroMoney.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney or ZeroMoney constructors")

// ErrCurrencyMismatch is returned when combining amounts in different currencies.
var ErrCurrencyMismatch = errors.New("money values have different currencies")

// Money represents a monetary amount in minor units (cents) together with its
// ISO 4217 currency code. Money is an immutable value object; all arithmetic
// returns new instances.
//
// Amounts are never negative: charges, payouts, and refunds each carry their own
// direction in the surrounding model, so a negative amount is always a bug.
//
// Example:
//
//	price, err := kernel.NewMoney(10500, "ZAR")
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(price) // Output: ZAR 105.00
type Money struct { //nolint:recvcheck //using for validation
	amountCents int64
	currency    string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value from an amount in minor units and a currency code.
// The amount must be non-negative. An empty currency defaults to DefaultCurrency;
// otherwise the code must be exactly three characters.
func NewMoney(amountCents int64, currency string) (Money, error) {
	m := Money{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		m.setAmountCents(amountCents),
		m.setCurrency(currency),
	); err != nil {
		return Money{}, err
	}

	return m, nil
}

// ZeroMoney creates a zero amount in the default currency.
func ZeroMoney() Money {
	m, _ := NewMoney(0, DefaultCurrency)
	return m
}

// Validate checks if the Money value was properly constructed.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// AmountCents returns the amount in minor units.
func (m Money) AmountCents() int64 {
	return m.amountCents
}

// Currency returns the ISO 4217 currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amountCents == 0
}

// Add returns the sum of two Money values.
// Returns ErrCurrencyMismatch if the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := errors.Join(m.Validate(), other.Validate()); err != nil {
		return Money{}, err
	}
	if m.currency != other.currency {
		return Money{}, ErrCurrencyMismatch
	}
	return NewMoney(m.amountCents+other.amountCents, m.currency)
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.amountCents == other.amountCents && m.currency == other.currency
}

// String formats the amount in major units, e.g. "ZAR 105.00".
func (m Money) String() string {
	return fmt.Sprintf("%s %d.%02d", m.currency, m.amountCents/100, m.amountCents%100)
}

func (m *Money) setAmountCents(amountCents int64) error {
	if amountCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amountCents",
			fmt.Errorf("%d is negative", amountCents))
	}
	m.amountCents = amountCents
	return nil
}

func (m *Money) setCurrency(currency string) error {
	if currency == "" {
		currency = DefaultCurrency
	}
	if len(currency) != 3 {
		return errs.NewValueIsInvalidErrorWithCause("currency",
			fmt.Errorf("%q is not a 3-letter ISO 4217 code", currency))
	}
	m.currency = currency
	return nil
}
