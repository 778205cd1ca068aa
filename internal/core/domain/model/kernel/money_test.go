package kernel_test

import (
	"testing"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("should create money with explicit currency", func(t *testing.T) {
		m, err := kernel.NewMoney(10500, "ZAR")

		require.NoError(t, err)
		assert.Equal(t, int64(10500), m.AmountCents())
		assert.Equal(t, "ZAR", m.Currency())
	})

	t.Run("should default currency when empty", func(t *testing.T) {
		m, err := kernel.NewMoney(100, "")

		require.NoError(t, err)
		assert.Equal(t, kernel.DefaultCurrency, m.Currency())
	})

	t.Run("should reject negative amount", func(t *testing.T) {
		_, err := kernel.NewMoney(-1, "ZAR")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject malformed currency code", func(t *testing.T) {
		_, err := kernel.NewMoney(100, "RAND")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("should add amounts in the same currency", func(t *testing.T) {
		price, _ := kernel.NewMoney(10000, "ZAR")
		delivery, _ := kernel.NewMoney(500, "ZAR")

		total, err := price.Add(delivery)

		require.NoError(t, err)
		assert.Equal(t, int64(10500), total.AmountCents())
	})

	t.Run("should reject mixed currencies", func(t *testing.T) {
		zar, _ := kernel.NewMoney(100, "ZAR")
		usd, _ := kernel.NewMoney(100, "USD")

		_, err := zar.Add(usd)

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrCurrencyMismatch)
	})

	t.Run("should reject unconstructed operands", func(t *testing.T) {
		var zero kernel.Money
		valid, _ := kernel.NewMoney(100, "ZAR")

		_, err := valid.Add(zero)

		require.Error(t, err)
	})
}

func TestMoney_String(t *testing.T) {
	t.Run("should format minor units as major units", func(t *testing.T) {
		m, _ := kernel.NewMoney(10505, "ZAR")

		assert.Equal(t, "ZAR 105.05", m.String())
	})
}

func TestMoney_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var m kernel.Money

		err := m.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrMoneyIsNotConstructed, err)
	})

	t.Run("ZeroMoney is valid", func(t *testing.T) {
		m := kernel.ZeroMoney()

		require.NoError(t, m.Validate())
		assert.True(t, m.IsZero())
	})
}
