package commands

import (
	"context"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/core/ports"
)

// RequestQuoteCommandHandler records a quote request in the audit trail and
// raises the event that notifies the supplier's staff.
type RequestQuoteCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewRequestQuoteCommandHandler creates a handler for quote requests.
func NewRequestQuoteCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) RequestQuoteCommandHandler {
	return RequestQuoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the quote request command.
// Publishes order.QuoteRequestedEvent after a successful commit.
func (h RequestQuoteCommandHandler) Handle(ctx context.Context, cmd RequestQuoteCommand) error {
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
		kernel.NewUUID(), aggregate.ID(), cmd.ActorID(), audit.ActionRequestQuote,
		map[string]any{
			"supplierId": cmd.SupplierID().String(),
			"note":       cmd.Note(),
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

	h.publisher.Publish(ctx, order.QuoteRequestedEvent{
		OrderID:    aggregate.ID(),
		SupplierID: cmd.SupplierID(),
	})
	return nil
}
