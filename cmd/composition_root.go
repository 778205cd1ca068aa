package cmd

import (
	"log/slog"

	"fulfilment/internal/adapters/out/postgres"
	"fulfilment/internal/adapters/out/postgres/notificationrepo"
	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/adapters/out/postgres/userrepo"
	"fulfilment/internal/core/application/events"
	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/application/usecases/queries"
	"fulfilment/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into application handlers. Command handlers
// share one event dispatcher so every committed mutation fans out to the same
// notification pipeline.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	dispatcher *events.Dispatcher
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	// Fan-out runs after the producing transaction commits, so the dispatcher
	// reads through the base connection rather than any unit of work.
	dispatcher := events.NewDispatcher(
		orderrepo.NewGormOrderRepository(gormDB),
		userrepo.NewGormUserRepository(gormDB),
		notificationrepo.NewGormNotificationRepository(gormDB),
		logger,
	)

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		dispatcher: dispatcher,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return postgres.NewOrderUoWFactory(c.uowFactory)
}

func (c *CompositionRoot) paymentUoWFactory() commands.PaymentUoWFactory {
	return postgres.NewPaymentUoWFactory(c.uowFactory)
}

func (c *CompositionRoot) payoutUoWFactory() commands.PayoutUoWFactory {
	return postgres.NewPayoutUoWFactory(c.uowFactory)
}

// EventPublisher exposes the shared dispatcher.
func (c *CompositionRoot) EventPublisher() ports.EventPublisher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateCreateManualOrderCommandHandler() commands.CreateManualOrderCommandHandler {
	return commands.NewCreateManualOrderCommandHandler(c.paymentUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateChangeStatusCommandHandler() commands.ChangeStatusCommandHandler {
	return commands.NewChangeStatusCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	return commands.NewAssignDriverCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRequestQuoteCommandHandler() commands.RequestQuoteCommandHandler {
	return commands.NewRequestQuoteCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateAcceptQuoteCommandHandler() commands.AcceptQuoteCommandHandler {
	return commands.NewAcceptQuoteCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreatePostOrderMessageCommandHandler() commands.PostOrderMessageCommandHandler {
	return commands.NewPostOrderMessageCommandHandler(c.orderUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRecordSupplierStatusCommandHandler() commands.RecordSupplierStatusCommandHandler {
	return commands.NewRecordSupplierStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	return commands.NewRecordPaymentCommandHandler(c.paymentUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateIssueRefundCommandHandler() commands.IssueRefundCommandHandler {
	return commands.NewIssueRefundCommandHandler(c.paymentUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateRequestPayoutCommandHandler() commands.RequestPayoutCommandHandler {
	return commands.NewRequestPayoutCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateUpdatePayoutStatusCommandHandler() commands.UpdatePayoutStatusCommandHandler {
	return commands.NewUpdatePayoutStatusCommandHandler(c.payoutUoWFactory(), c.dispatcher)
}

func (c *CompositionRoot) CreateOrderTimelineQueryHandler() queries.OrderTimelineQueryHandler {
	return queries.NewOrderTimelineQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateDailyReportQueryHandler() queries.DailyReportQueryHandler {
	return queries.NewDailyReportQueryHandler(c.gormDB)
}
