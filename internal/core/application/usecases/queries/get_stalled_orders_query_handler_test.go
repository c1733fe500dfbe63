package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetStalledOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetStalledOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLineDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetStalledOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines").Error
	suite.Require().NoError(err)
}

// seedOrderInStatus persists an order driven to the given status and
// backdates its updated_at by age.
func (suite *GetStalledOrdersQueryHandlerTestSuite) seedOrderInStatus(
	status order.Status, age time.Duration,
) *order.Order {
	ctx := context.Background()

	seeded := newTestOrder()
	suite.Require().NoError(suite.orderRepo.Add(ctx, seeded))

	err := suite.db.Exec(
		"UPDATE orders SET status = ?, updated_at = ? WHERE id = ?",
		int(status), time.Now().Add(-age), seeded.ID().Bytes(),
	).Error
	suite.Require().NoError(err)

	return seeded
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetStalledOrdersQuery(15 * time.Minute)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_OldWaitingOrders_AreReported() {
	stalledValidation := suite.seedOrderInStatus(order.StatusValidationPending, time.Hour)
	stalledAllocation := suite.seedOrderInStatus(order.StatusAllocationPending, 2*time.Hour)
	stalledInventory := suite.seedOrderInStatus(order.StatusPendingInventory, 3*time.Hour)

	query, err := queries.NewGetStalledOrdersQuery(15 * time.Minute)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	// Oldest first
	suite.Equal(stalledInventory.ID(), result[0].ID)
	suite.Equal("PENDING_INVENTORY", result[0].Status)
	suite.Equal(stalledAllocation.ID(), result[1].ID)
	suite.Equal("ALLOCATION_PENDING", result[1].Status)
	suite.Equal(stalledValidation.ID(), result[2].ID)
	suite.Equal("VALIDATION_PENDING", result[2].Status)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_FreshWaitingOrders_AreNotReported() {
	suite.seedOrderInStatus(order.StatusValidationPending, time.Minute)
	suite.seedOrderInStatus(order.StatusAllocationPending, time.Minute)

	query, err := queries.NewGetStalledOrdersQuery(15 * time.Minute)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_SettledOrders_AreNotReported() {
	// Old but settled statuses must never count as stalled.
	suite.seedOrderInStatus(order.StatusNew, time.Hour)
	suite.seedOrderInStatus(order.StatusValidated, time.Hour)
	suite.seedOrderInStatus(order.StatusAllocated, time.Hour)
	suite.seedOrderInStatus(order.StatusPickedUp, time.Hour)
	suite.seedOrderInStatus(order.StatusCancelled, time.Hour)

	query, err := queries.NewGetStalledOrdersQuery(15 * time.Minute)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetStalledOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetStalledOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetStalledOrdersQuery constructor")
}

func TestGetStalledOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetStalledOrdersQueryHandlerTestSuite))
}
