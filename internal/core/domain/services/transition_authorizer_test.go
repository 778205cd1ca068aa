package services_test

import (
	"testing"

	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact(t *testing.T) kernel.Contact {
	t.Helper()
	contact, err := kernel.NewContact("Thandi M", "+27820000000", "")
	require.NoError(t, err)
	return contact
}

func validAddress(t *testing.T) kernel.Address {
	t.Helper()
	address, err := kernel.NewAddress("12 Main Rd", "", "Cape Town", "7700")
	require.NoError(t, err)
	return address
}

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoney(cents, "ZAR")
	require.NoError(t, err)
	return m
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-1001",
		validContact(t), validAddress(t),
		money(t, 15000), money(t, 3500), nil,
	)
	require.NoError(t, err)
	return o
}

func newUser(t *testing.T, role user.Role, supplierID *kernel.UUID) *user.User {
	t.Helper()
	var driverID *kernel.UUID
	if role == user.RoleDriver {
		id := kernel.NewUUID()
		driverID = &id
	}
	u, err := user.NewUser(kernel.NewUUID(), "Test User", "test@example.com", role, supplierID, driverID)
	require.NoError(t, err)
	return u
}

func TestTransitionAuthorizer_Authorize(t *testing.T) {
	authorizer := services.NewTransitionAuthorizer()

	t.Run("admin may request any transition", func(t *testing.T) {
		admin := newUser(t, user.RoleAdmin, nil)
		o := newTestOrder(t)

		require.NoError(t, authorizer.Authorize(admin, o, order.SourcingSupplier))
		require.NoError(t, authorizer.Authorize(admin, o, order.Canceled))
	})

	t.Run("caretaker may request any transition", func(t *testing.T) {
		caretaker := newUser(t, user.RoleCaretaker, nil)
		o := newTestOrder(t)

		require.NoError(t, authorizer.Authorize(caretaker, o, order.Canceled))
	})

	t.Run("owning supplier may request work-progress statuses", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		supplier := newUser(t, user.RoleSupplier, &supplierID)
		o := newTestOrder(t)
		require.NoError(t, o.AssignSupplier(supplierID, money(t, 15000)))

		for _, target := range []order.Status{
			order.InProgress, order.ReadyForDelivery, order.OutForDelivery, order.Delivered,
		} {
			assert.NoError(t, authorizer.Authorize(supplier, o, target), target.String())
		}
	})

	t.Run("owning supplier may not cancel or close", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		supplier := newUser(t, user.RoleSupplier, &supplierID)
		o := newTestOrder(t)
		require.NoError(t, o.AssignSupplier(supplierID, money(t, 15000)))

		for _, target := range []order.Status{order.Canceled, order.Closed, order.SupplierConfirmed} {
			err := authorizer.Authorize(supplier, o, target)
			require.ErrorIs(t, err, errs.ErrOperationForbidden, target.String())
		}
	})

	t.Run("non-owning supplier gets forbidden even for illegal transitions", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		otherSupplierID := kernel.NewUUID()
		stranger := newUser(t, user.RoleSupplier, &otherSupplierID)
		o := newTestOrder(t)
		require.NoError(t, o.AssignSupplier(supplierID, money(t, 15000)))

		// Delivered is not reachable from New, but the ownership failure must win:
		// a non-owner learns nothing about the order's state.
		err := authorizer.Authorize(stranger, o, order.Delivered)
		require.ErrorIs(t, err, errs.ErrOperationForbidden)
		assert.NotErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("supplier actor on order without supplier gets forbidden", func(t *testing.T) {
		supplierID := kernel.NewUUID()
		supplier := newUser(t, user.RoleSupplier, &supplierID)
		o := newTestOrder(t)

		err := authorizer.Authorize(supplier, o, order.InProgress)
		require.ErrorIs(t, err, errs.ErrOperationForbidden)
	})

	t.Run("customer and driver have no status authority", func(t *testing.T) {
		o := newTestOrder(t)

		for _, role := range []user.Role{user.RoleCustomer, user.RoleDriver} {
			actor := newUser(t, role, nil)
			err := authorizer.Authorize(actor, o, order.Canceled)
			require.ErrorIs(t, err, errs.ErrOperationForbidden, role.String())
		}
	})

	t.Run("invalid actor fails", func(t *testing.T) {
		var invalidActor *user.User
		o := newTestOrder(t)

		err := authorizer.Authorize(invalidActor, o, order.Canceled)
		require.Error(t, err)
		assert.Equal(t, user.ErrUserIsNotConstructed, err)
	})

	t.Run("invalid order fails", func(t *testing.T) {
		admin := newUser(t, user.RoleAdmin, nil)
		var invalidOrder *order.Order

		err := authorizer.Authorize(admin, invalidOrder, order.Canceled)
		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}
