package commands

import (
	"context"
	"fmt"

	"fulfilment/internal/core/domain/model/audit"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/user"
	"fulfilment/internal/core/ports"
	"fulfilment/internal/pkg/errs"
)

// AcceptQuoteCommandHandler binds the quoting supplier and the agreed price to
// the order. Operations staff or the order's own customer may accept.
type AcceptQuoteCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptQuoteCommandHandler creates a handler for quote acceptance.
func NewAcceptQuoteCommandHandler(
	uowFactory OrderUoWFactory, publisher ports.EventPublisher,
) AcceptQuoteCommandHandler {
	return AcceptQuoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the quote acceptance command.
func (h AcceptQuoteCommandHandler) Handle(ctx context.Context, cmd AcceptQuoteCommand) error {
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

	if !h.mayAccept(actor, aggregate.CustomerID()) {
		return errs.NewOperationForbiddenErrorWithCause("accept quote",
			fmt.Errorf("role %s may not accept quotes on this order", actor.Role()))
	}

	if err = aggregate.AssignSupplier(cmd.SupplierID(), cmd.Price()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(), aggregate.ID(), cmd.ActorID(), audit.ActionAcceptQuote,
		map[string]any{
			"supplierId": cmd.SupplierID().String(),
			"amount":     cmd.Price().AmountCents(),
			"currency":   cmd.Price().Currency(),
		},
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Add(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h AcceptQuoteCommandHandler) mayAccept(actor *user.User, customerID *kernel.UUID) bool {
	if actor.Role().IsOperations() {
		return true
	}
	return actor.Role() == user.RoleCustomer &&
		customerID != nil && customerID.IsEqual(actor.ID())
}
