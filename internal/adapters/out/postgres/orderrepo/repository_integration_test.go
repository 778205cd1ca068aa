package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfilment/internal/adapters/out/postgres/orderrepo"
	"fulfilment/internal/core/domain/model/kernel"
	"fulfilment/internal/core/domain/model/order"
	"fulfilment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite verifies order persistence against a
// real PostgreSQL instance, including the optimistic-lock behavior that unit
// tests cannot exercise.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-5001")

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTripsAllFields() {
	ctx := context.Background()

	original := suite.createTestOrder("ORD-5002")
	supplierID := kernel.NewUUID()
	price, err := kernel.NewMoney(21000, "ZAR")
	suite.Require().NoError(err)
	suite.Require().NoError(original.AssignSupplier(supplierID, price))

	point, err := kernel.NewGeoPoint(-33.92, 18.42, 12.5, time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(original.RecordSupplierLocation(point))

	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(original.ID()))
	suite.Equal("ORD-5002", retrieved.Code())
	suite.Equal(original.Contact().Name(), retrieved.Contact().Name())
	suite.Equal(original.Contact().Phone(), retrieved.Contact().Phone())
	suite.Equal(original.Address().City(), retrieved.Address().City())
	suite.Equal(int64(21000), retrieved.Price().AmountCents())
	suite.Equal(original.DeliveryFee().AmountCents(), retrieved.DeliveryFee().AmountCents())
	suite.Equal(order.New, retrieved.Status())
	suite.Require().NotNil(retrieved.SupplierID())
	suite.True(retrieved.SupplierID().IsEqual(supplierID))
	suite.Nil(retrieved.DriverID())
	suite.Nil(retrieved.CustomerLocation())
	suite.Require().NotNil(retrieved.SupplierLocation())
	suite.InDelta(-33.92, retrieved.SupplierLocation().Latitude(), 1e-9)
	suite.InDelta(18.42, retrieved.SupplierLocation().Longitude(), 1e-9)
	suite.Equal(original.Version(), retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-5003")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.ChangeStatus(order.SourcingSupplier))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SourcingSupplier, retrieved.Status())
	suite.Equal(testOrder.Version()+1, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("ORD-5004")
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two actors load the same version of the order.
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ChangeStatus(order.SourcingSupplier))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.ChangeStatus(order.Canceled))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// The winner's change stands.
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.SourcingSupplier, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	missing := suite.createTestOrder("ORD-5005")

	err := suite.repository.Update(ctx, missing)

	suite.Require().Error(err)
	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersByStatus() {
	ctx := context.Background()

	inNew := suite.createTestOrder("ORD-5006")
	suite.Require().NoError(suite.repository.Add(ctx, inNew))

	sourcing := suite.createTestOrder("ORD-5007")
	suite.Require().NoError(sourcing.ChangeStatus(order.SourcingSupplier))
	suite.Require().NoError(suite.repository.Add(ctx, sourcing))

	orders, err := suite.repository.GetAllInStatus(ctx, order.SourcingSupplier)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(sourcing.ID()))

	empty, err := suite.repository.GetAllInStatus(ctx, order.Delivered)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(code string) *order.Order {
	contact, err := kernel.NewContact("Thandi M", "+27820000000", "thandi@example.com")
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("12 Main Rd", "Claremont", "Cape Town", "7700")
	suite.Require().NoError(err)
	price, err := kernel.NewMoney(15000, "ZAR")
	suite.Require().NoError(err)
	fee, err := kernel.NewMoney(3500, "ZAR")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), code, contact, address, price, fee, nil)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
