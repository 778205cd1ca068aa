package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChangeStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	actor := testOpsUser(user.RoleAdmin)
	aggregate := testOrder(orderID)
	cmd, err := commands.NewChangeStatusCommand(orderID, actor.ID(), order.SourcingSupplier)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	auditRepo := new(MockAuditRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) {
				entry := args.Get(1).(*audit.Entry)
				require.Equal(t, audit.ActionStatusChange, entry.Action())
				require.Equal(t, "New", entry.Payload()["from"])
				require.Equal(t, "SourcingSupplier", entry.Payload()["to"])
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewChangeStatusCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, order.SourcingSupplier, aggregate.Status())
	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0].(order.StatusChangedEvent)
	require.Equal(t, order.New, event.From)
	require.Equal(t, order.SourcingSupplier, event.To)

	orderRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeStatusCommandHandler_Handle_CustomerForbidden(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	customer, _ := user.NewUser(kernel.NewUUID(), "Customer", "c@example.com", user.RoleCustomer, nil, nil)
	aggregate := testOrder(orderID)
	cmd, _ := commands.NewChangeStatusCommand(orderID, customer.ID(), order.Canceled)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, customer.ID()).Return(customer, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewChangeStatusCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrOperationForbidden)
	require.Equal(t, order.New, aggregate.Status(), "status must not change")
	require.Empty(t, publisher.Events)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestChangeStatusCommandHandler_Handle_NonOwnerSupplierGetsForbiddenNotInvalidTransition(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	ownerSupplierID := kernel.NewUUID()
	stranger := testSupplierUser(kernel.NewUUID())
	aggregate := testOrder(orderID)
	require.NoError(t, aggregate.AssignSupplier(ownerSupplierID, zar(15000)))

	// Delivered is illegal from New, but the stranger must see Forbidden.
	cmd, _ := commands.NewChangeStatusCommand(orderID, stranger.ID(), order.Delivered)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, stranger.ID()).Return(stranger, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewChangeStatusCommandHandler(factory, &CapturingPublisher{})
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrOperationForbidden)
	require.NotErrorIs(t, err, order.ErrInvalidTransition)
}

func TestChangeStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	actor := testOpsUser(user.RoleAdmin)
	aggregate := testOrder(orderID)
	cmd, _ := commands.NewChangeStatusCommand(orderID, actor.ID(), order.Delivered)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewChangeStatusCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	require.Equal(t, order.New, aggregate.Status())
	require.Empty(t, publisher.Events)
}

func TestChangeStatusCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	actor := testOpsUser(user.RoleCaretaker)
	aggregate := testOrder(orderID)
	cmd, _ := commands.NewChangeStatusCommand(orderID, actor.ID(), order.SourcingSupplier)

	conflict := errs.NewConcurrencyConflictError("order", orderID.String())

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		orderRepo.On("Update", mock.Anything, aggregate).Return(conflict).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewChangeStatusCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	require.Empty(t, publisher.Events, "losing writer must not emit an event")
}
