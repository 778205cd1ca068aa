package commands_test

import (
	"testing"

	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/payout"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRequestPayoutCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	actor := testOpsUser(user.RoleAdmin)
	aggregate := testOrder(orderID) // total 18500
	require.NoError(t, aggregate.AssignSupplier(supplierID, zar(15000)))

	payoutID := kernel.NewUUID()
	cmd, err := commands.NewRequestPayoutCommand(payoutID, orderID, actor.ID(), supplierID, zar(12000))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	payoutRepo := new(MockPayoutRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("GetByOrder", mock.Anything, orderID).Return([]*payout.Payout{}, nil).Once(),
		payoutRepo.On("Add", mock.Anything, mock.AnythingOfType("*payout.Payout")).
			Run(func(args mock.Arguments) {
				p := args.Get(1).(*payout.Payout)
				require.Equal(t, payout.StatusPending, p.Status())
				require.Equal(t, int64(12000), p.Amount().AmountCents())
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewRequestPayoutCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, publisher.Events, 1)
	event := publisher.Events[0].(payout.UpdatedEvent)
	require.Equal(t, payout.StatusPending, event.Status)
	require.True(t, event.PayoutID.IsEqual(payoutID))
	payoutRepo.AssertExpectations(t)
}

func TestRequestPayoutCommandHandler_Handle_BudgetExceeded(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	actor := testOpsUser(user.RoleCaretaker)
	aggregate := testOrder(orderID)
	require.NoError(t, aggregate.AssignSupplier(supplierID, zar(15000)))

	released, _ := payout.NewPayout(kernel.NewUUID(), orderID, supplierID, zar(15000))
	cmd, _ := commands.NewRequestPayoutCommand(kernel.NewUUID(), orderID, actor.ID(), supplierID, zar(4000))

	orderRepo := new(MockOrderRepository)
	payoutRepo := new(MockPayoutRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, orderID).Return(aggregate, nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("GetByOrder", mock.Anything, orderID).Return([]*payout.Payout{released}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewRequestPayoutCommandHandler(factory, publisher)
	err := h.Handle(ctx, cmd)

	// 15000 + 4000 > 18500
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.Empty(t, publisher.Events)
	payoutRepo.AssertExpectations(t)
}

func TestRequestPayoutCommandHandler_Handle_NonOpsForbidden(t *testing.T) {
	ctx := t.Context()
	supplierID := kernel.NewUUID()
	actor := testSupplierUser(supplierID)
	cmd, _ := commands.NewRequestPayoutCommand(
		kernel.NewUUID(), kernel.NewUUID(), actor.ID(), supplierID, zar(1000))

	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRequestPayoutCommandHandler(factory, &CapturingPublisher{})
	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrOperationForbidden)
}

func TestUpdatePayoutStatusCommandHandler_Handle_ReleaseWritesAudit(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	supplierID := kernel.NewUUID()
	actor := testOpsUser(user.RoleAdmin)
	pending, _ := payout.NewPayout(kernel.NewUUID(), orderID, supplierID, zar(10000))
	cmd, _ := commands.NewUpdatePayoutStatusCommand(pending.ID(), actor.ID(), payout.StatusReleased)

	payoutRepo := new(MockPayoutRepository)
	auditRepo := new(MockAuditRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		payoutRepo.On("Update", mock.Anything, pending).Return(nil).Once(),
		uow.On("AuditRepository").Return(auditRepo).Once(),
		auditRepo.On("Add", mock.Anything, mock.AnythingOfType("*audit.Entry")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &CapturingPublisher{}
	h := commands.NewUpdatePayoutStatusCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, payout.StatusReleased, pending.Status())
	require.Len(t, publisher.Events, 1)
	auditRepo.AssertExpectations(t)
}

func TestUpdatePayoutStatusCommandHandler_Handle_FailureSkipsAudit(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	actor := testOpsUser(user.RoleCaretaker)
	pending, _ := payout.NewPayout(kernel.NewUUID(), orderID, kernel.NewUUID(), zar(10000))
	cmd, _ := commands.NewUpdatePayoutStatusCommand(pending.ID(), actor.ID(), payout.StatusFailed)

	payoutRepo := new(MockPayoutRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("Get", mock.Anything, pending.ID()).Return(pending, nil).Once(),
		payoutRepo.On("Update", mock.Anything, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePayoutStatusCommandHandler(factory, &CapturingPublisher{})
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, payout.StatusFailed, pending.Status())
}

func TestUpdatePayoutStatusCommandHandler_Handle_SettledPayoutRejected(t *testing.T) {
	ctx := t.Context()
	actor := testOpsUser(user.RoleAdmin)
	settled, _ := payout.NewPayout(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), zar(10000))
	require.NoError(t, settled.UpdateStatus(payout.StatusReleased))
	cmd, _ := commands.NewUpdatePayoutStatusCommand(settled.ID(), actor.ID(), payout.StatusFailed)

	payoutRepo := new(MockPayoutRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", mock.Anything, actor.ID()).Return(actor, nil).Once(),
		uow.On("PayoutRepository").Return(payoutRepo).Once(),
		payoutRepo.On("Get", mock.Anything, settled.ID()).Return(settled, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPayoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdatePayoutStatusCommandHandler(factory, &CapturingPublisher{})
	require.ErrorIs(t, h.Handle(ctx, cmd), payout.ErrPayoutIsSettled)
}
