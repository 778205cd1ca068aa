package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// PostOrderMessageCommandHandler appends a message to the order's audit trail.
type PostOrderMessageCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewPostOrderMessageCommandHandler creates a handler for order messages.
func NewPostOrderMessageCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) PostOrderMessageCommandHandler {
	return PostOrderMessageCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the message command.
// Publishes order.MessagePostedEvent after a successful commit.
func (h PostOrderMessageCommandHandler) Handle(ctx context.Context, cmd PostOrderMessageCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.AuthorID(), audit.ActionMessage,
		map[string]any{"text": cmd.Text()},
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

	h.publisher.Publish(ctx, order.MessagePostedEvent{
		OrderID:  aggregate.ID(),
		AuthorID: cmd.AuthorID(),
		Text:     cmd.Text(),
	})
	return nil
}
