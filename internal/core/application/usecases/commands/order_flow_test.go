package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"fulfilment/internal/core/application/events"
	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/notification"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the in-memory repositories so a whole command flow can run
// against real handlers and the real event dispatcher without a database.
type memStore struct {
	orders        map[string]*order.Order
	users         map[string]*user.User
	audits        []*audit.Entry
	notifications []*notification.Notification
}

func newMemStore() *memStore {
	return &memStore{
		orders: make(map[string]*order.Order),
		users:  make(map[string]*user.User),
	}
}

func (s *memStore) addUser(u *user.User) { s.users[u.ID().String()] = u }

type memOrderRepo struct{ store *memStore }

func (r memOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memOrderRepo) Update(_ context.Context, o *order.Order) error {
	if _, ok := r.store.orders[o.ID().String()]; !ok {
		return errs.NewConcurrencyConflictError("order", o.ID().String())
	}
	r.store.orders[o.ID().String()] = o
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.store.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

func (r memOrderRepo) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	result := make([]*order.Order, 0)
	for _, o := range r.store.orders {
		if o.Status() == status {
			result = append(result, o)
		}
	}
	return result, nil
}

type memAuditRepo struct{ store *memStore }

func (r memAuditRepo) Add(_ context.Context, entry *audit.Entry) error {
	r.store.audits = append(r.store.audits, entry)
	return nil
}

func (r memAuditRepo) GetByOrder(_ context.Context, orderID kernel.UUID) ([]*audit.Entry, error) {
	result := make([]*audit.Entry, 0)
	for _, entry := range r.store.audits {
		if entry.OrderID().IsEqual(orderID) {
			result = append(result, entry)
		}
	}
	return result, nil
}

type memUserRepo struct{ store *memStore }

func (r memUserRepo) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	u, ok := r.store.users[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id.String())
	}
	return u, nil
}

func (r memUserRepo) GetByRoles(_ context.Context, roles []user.Role) ([]*user.User, error) {
	result := make([]*user.User, 0)
	for _, u := range r.store.users {
		for _, role := range roles {
			if u.Role() == role {
				result = append(result, u)
				break
			}
		}
	}
	return result, nil
}

func (r memUserRepo) GetBySupplierID(_ context.Context, supplierID kernel.UUID) ([]*user.User, error) {
	result := make([]*user.User, 0)
	for _, u := range r.store.users {
		if u.WorksForSupplier(supplierID) {
			result = append(result, u)
		}
	}
	return result, nil
}

func (r memUserRepo) GetByDriverID(_ context.Context, driverID kernel.UUID) ([]*user.User, error) {
	result := make([]*user.User, 0)
	for _, u := range r.store.users {
		if u.DriverID() != nil && u.DriverID().IsEqual(driverID) {
			result = append(result, u)
		}
	}
	return result, nil
}

type memNotificationRepo struct{ store *memStore }

func (r memNotificationRepo) AddBatch(_ context.Context, batch []*notification.Notification) error {
	r.store.notifications = append(r.store.notifications, batch...)
	return nil
}

func (r memNotificationRepo) Update(_ context.Context, _ *notification.Notification) error {
	return nil
}

func (r memNotificationRepo) GetByUser(
	_ context.Context, userID kernel.UUID,
) ([]*notification.Notification, error) {
	result := make([]*notification.Notification, 0)
	for _, n := range r.store.notifications {
		if n.UserID().IsEqual(userID) {
			result = append(result, n)
		}
	}
	return result, nil
}

// memUoW is a no-op transaction over the shared store.
type memUoW struct{ store *memStore }

func (u memUoW) Begin(_ context.Context) error    { return nil }
func (u memUoW) Commit(_ context.Context) error   { return nil }
func (u memUoW) Rollback(_ context.Context) error { return nil }

func (u memUoW) OrderRepository() ports.OrderRepository {
	return memOrderRepo{store: u.store}
}

func (u memUoW) AuditRepository() ports.AuditRepository {
	return memAuditRepo{store: u.store}
}

func (u memUoW) UserRepository() ports.UserRepository {
	return memUserRepo{store: u.store}
}

type memOrderUoWFactory struct{ store *memStore }

func (f memOrderUoWFactory) Create() commands.OrderUoW { return memUoW{store: f.store} }

// TestOrderFlow_SourcingToInProgress walks one order through creation and the
// early lifecycle with real handlers wired to the real event dispatcher,
// checking who may act at each step and who hears about it.
func TestOrderFlow_SourcingToInProgress(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	admin, err := user.NewUser(kernel.NewUUID(), "Admin", "admin@example.com", user.RoleAdmin, nil, nil)
	require.NoError(t, err)
	caretaker, err := user.NewUser(kernel.NewUUID(), "Caretaker", "ops@example.com", user.RoleCaretaker, nil, nil)
	require.NoError(t, err)
	customer, err := user.NewUser(kernel.NewUUID(), "Customer", "c@example.com", user.RoleCustomer, nil, nil)
	require.NoError(t, err)

	supplierID := kernel.NewUUID()
	otherSupplierID := kernel.NewUUID()
	ownerStaff, err := user.NewUser(
		kernel.NewUUID(), "Owner Staff", "own@example.com", user.RoleSupplier, &supplierID, nil)
	require.NoError(t, err)
	otherStaff, err := user.NewUser(
		kernel.NewUUID(), "Other Staff", "other@example.com", user.RoleSupplier, &otherSupplierID, nil)
	require.NoError(t, err)

	for _, u := range []*user.User{admin, caretaker, customer, ownerStaff, otherStaff} {
		store.addUser(u)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := events.NewDispatcher(
		memOrderRepo{store: store},
		memUserRepo{store: store},
		memNotificationRepo{store: store},
		logger,
	)

	factory := memOrderUoWFactory{store: store}
	createHandler := commands.NewCreateOrderCommandHandler(factory, dispatcher)
	acceptHandler := commands.NewAcceptQuoteCommandHandler(factory, dispatcher)
	statusHandler := commands.NewChangeStatusCommandHandler(factory, dispatcher)

	// Create: the order lands in New.
	orderID := kernel.NewUUID()
	customerID := customer.ID()
	createCmd, err := commands.NewCreateOrderCommand(
		orderID, "ORD-7001", testContact(), testAddress(), zar(15000), zar(3500), &customerID)
	require.NoError(t, err)
	require.NoError(t, createHandler.Handle(ctx, createCmd))
	require.Equal(t, order.New, store.orders[orderID.String()].Status())

	// Caretaker starts sourcing; operations and the customer hear about it.
	before := len(store.notifications)
	changeStatus(t, ctx, statusHandler, orderID, caretaker.ID(), order.SourcingSupplier)
	require.Equal(t, order.SourcingSupplier, store.orders[orderID.String()].Status())

	sourcing := store.notifications[before:]
	require.Len(t, sourcing, 3)
	recipients := recipientSet(sourcing)
	assert.Contains(t, recipients, admin.ID().String())
	assert.Contains(t, recipients, caretaker.ID().String())
	assert.Contains(t, recipients, customer.ID().String())

	// Quote accepted: the supplier is bound and the price fixed.
	acceptCmd, err := commands.NewAcceptQuoteCommand(orderID, caretaker.ID(), supplierID, zar(14000))
	require.NoError(t, err)
	require.NoError(t, acceptHandler.Handle(ctx, acceptCmd))
	require.NotNil(t, store.orders[orderID.String()].SupplierID())

	changeStatus(t, ctx, statusHandler, orderID, caretaker.ID(), order.SupplierConfirmed)

	// Staff of a different supplier may not move the order, and the refusal
	// must not reveal whether the move itself would have been legal.
	wrongCmd, err := commands.NewChangeStatusCommand(orderID, otherStaff.ID(), order.InProgress)
	require.NoError(t, err)
	err = statusHandler.Handle(ctx, wrongCmd)
	require.ErrorIs(t, err, errs.ErrOperationForbidden)
	require.NotErrorIs(t, err, order.ErrInvalidTransition)
	require.Equal(t, order.SupplierConfirmed, store.orders[orderID.String()].Status())

	// The owning supplier's staff may.
	before = len(store.notifications)
	changeStatus(t, ctx, statusHandler, orderID, ownerStaff.ID(), order.InProgress)
	require.Equal(t, order.InProgress, store.orders[orderID.String()].Status())

	inProgress := store.notifications[before:]
	require.Len(t, inProgress, 4)
	recipients = recipientSet(inProgress)
	assert.Contains(t, recipients, admin.ID().String())
	assert.Contains(t, recipients, ownerStaff.ID().String())
	assert.Contains(t, recipients, customer.ID().String())
	assert.Equal(t, "Your order is being worked on.",
		bodyFor(inProgress, customer.ID()))

	// Every successful transition left exactly one STATUS_CHANGE entry.
	entries, err := memAuditRepo{store: store}.GetByOrder(ctx, orderID)
	require.NoError(t, err)

	var transitions []*audit.Entry
	for _, entry := range entries {
		if entry.Action() == audit.ActionStatusChange {
			transitions = append(transitions, entry)
		}
	}
	require.Len(t, transitions, 3)
	assert.Equal(t, "New", transitions[0].Payload()["from"])
	assert.Equal(t, "SourcingSupplier", transitions[0].Payload()["to"])
	assert.Equal(t, "SupplierConfirmed", transitions[2].Payload()["from"])
	assert.Equal(t, "InProgress", transitions[2].Payload()["to"])
}

func changeStatus(
	t *testing.T,
	ctx context.Context,
	handler commands.ChangeStatusCommandHandler,
	orderID, actorID kernel.UUID,
	target order.Status,
) {
	t.Helper()
	cmd, err := commands.NewChangeStatusCommand(orderID, actorID, target)
	require.NoError(t, err)
	require.NoError(t, handler.Handle(ctx, cmd))
}

func recipientSet(batch []*notification.Notification) map[string]struct{} {
	set := make(map[string]struct{}, len(batch))
	for _, n := range batch {
		set[n.UserID().String()] = struct{}{}
	}
	return set
}

func bodyFor(batch []*notification.Notification, userID kernel.UUID) string {
	for _, n := range batch {
		if n.UserID().IsEqual(userID) {
			return n.Body()
		}
	}
	return ""
}
