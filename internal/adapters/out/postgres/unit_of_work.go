// Package postgres provides the GORM-based Unit of Work and repository
// implementations. A unit of work scopes one business transaction: every
// repository obtained from it runs against the same database transaction,
// so an order mutation and its audit entry commit or roll back together.
package postgres

import (
	"context"

	"fulfilment/internal/adapters/out/postgres/auditrepo"
	"fulfilment/internal/adapters/out/postgres/notificationrepo"
	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/adapters/out/postgres/paymentrepo"
	"fulfilment/internal/adapters/out/postgres/payoutrepo"
	"fulfilment/internal/adapters/out/postgres/userrepo"
	"fulfilment/internal/core/application/usecases/commands"
	"fulfilment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM
// connection pool. Each business operation gets a fresh instance with its
// own transaction state.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory over the given connection pool.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction across the
// repositories of a business operation. Begin is idempotent; Commit and
// Rollback close the transaction and a closed unit of work cannot be reused.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction. Calling Begin again on an
// active unit of work is a no-op rather than a nested transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// conn returns the active transaction, or the base connection when no
// transaction is open.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// OrderRepository returns an OrderRepository bound to the current transaction.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

// AuditRepository returns an AuditRepository bound to the current transaction.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn())
}

// PaymentRepository returns a PaymentRepository bound to the current transaction.
func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn())
}

// PayoutRepository returns a PayoutRepository bound to the current transaction.
func (uow *GormUnitOfWork) PayoutRepository() ports.PayoutRepository {
	return payoutrepo.NewGormPayoutRepository(uow.conn())
}

// NotificationRepository returns a NotificationRepository bound to the current transaction.
func (uow *GormUnitOfWork) NotificationRepository() ports.NotificationRepository {
	return notificationrepo.NewGormNotificationRepository(uow.conn())
}

// UserRepository returns a UserRepository bound to the current transaction.
func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

var _ ports.UnitOfWork = (*GormUnitOfWork)(nil)

// Factory adapters bridging the single GORM factory to the narrower
// per-command factory interfaces. Go has no covariant returns, so each
// flavour needs its own Create wrapper.

// OrderUoWFactory adapts GormUnitOfWorkFactory to commands.OrderUoWFactory.
type OrderUoWFactory struct {
	inner *GormUnitOfWorkFactory
}

// NewOrderUoWFactory wraps the GORM factory.
func NewOrderUoWFactory(inner *GormUnitOfWorkFactory) OrderUoWFactory {
	return OrderUoWFactory{inner: inner}
}

// Create produces a unit of work for order lifecycle commands.
func (f OrderUoWFactory) Create() commands.OrderUoW {
	return f.inner.Create()
}

// PaymentUoWFactory adapts GormUnitOfWorkFactory to commands.PaymentUoWFactory.
type PaymentUoWFactory struct {
	inner *GormUnitOfWorkFactory
}

// NewPaymentUoWFactory wraps the GORM factory.
func NewPaymentUoWFactory(inner *GormUnitOfWorkFactory) PaymentUoWFactory {
	return PaymentUoWFactory{inner: inner}
}

// Create produces a unit of work for payment commands.
func (f PaymentUoWFactory) Create() commands.PaymentUoW {
	return f.inner.Create()
}

// PayoutUoWFactory adapts GormUnitOfWorkFactory to commands.PayoutUoWFactory.
type PayoutUoWFactory struct {
	inner *GormUnitOfWorkFactory
}

// NewPayoutUoWFactory wraps the GORM factory.
func NewPayoutUoWFactory(inner *GormUnitOfWorkFactory) PayoutUoWFactory {
	return PayoutUoWFactory{inner: inner}
}

// Create produces a unit of work for payout commands.
func (f PayoutUoWFactory) Create() commands.PayoutUoW {
	return f.inner.Create()
}

var (
	_ commands.OrderUoWFactory   = OrderUoWFactory{}
	_ commands.PaymentUoWFactory = PaymentUoWFactory{}
	_ commands.PayoutUoWFactory  = PayoutUoWFactory{}
)
