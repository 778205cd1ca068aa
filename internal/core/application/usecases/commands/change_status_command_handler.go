package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/domain/services"
	"fulfilment/internal/core/ports"
)

// ChangeStatusCommandHandler orchestrates a status transition.
//
// Authority is checked before legality: a non-owner receives Forbidden without
// learning whether the move would have been legal. The order update and the
// STATUS_CHANGE audit entry commit atomically; the optimistic-lock version on
// the order row serializes concurrent movers, so racing requests observe either
// the previous or the new status, never a half-applied one.
type ChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	authorizer services.TransitionAuthorizer
	publisher  ports.EventPublisher
}

// NewChangeStatusCommandHandler creates a handler for status transition requests.
func NewChangeStatusCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) ChangeStatusCommandHandler {
	return ChangeStatusCommandHandler{
		uowFactory: uowFactory,
		authorizer: services.NewTransitionAuthorizer(),
		publisher:  publisher,
	}
}

// Handle processes the status transition command.
// Publishes order.StatusChangedEvent after a successful commit.
func (h ChangeStatusCommandHandler) Handle(ctx context.Context, cmd ChangeStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.UserRepository().Get(ctx, cmd.ActorID())
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.authorizer.Authorize(actor, aggregate, cmd.Target()); err != nil {
		return err
	}

	from := aggregate.Status()
	if err = aggregate.ChangeStatus(cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.ActorID(), audit.ActionStatusChange,
		map[string]any{
			"from": from.String(),
			"to":   cmd.Target().String(),
		},
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, order.StatusChangedEvent{
		OrderID: aggregate.ID(),
		From:    from,
		To:      cmd.Target(),
	})
	return nil
}
