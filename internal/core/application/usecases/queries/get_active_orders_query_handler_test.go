package queries_test

import (
	"context"
	"testing"
	"time"

	"transtrack/internal/adapters/out/postgres/orderrepo"
	"transtrack/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&orderrepo.OrderDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, nopTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ExcludesCancelledOrders() {
	active := planOrder(time.Now().UTC().Add(-time.Hour))
	err := suite.orderRepo.Add(context.Background(), active)
	suite.Require().NoError(err)

	cancelled := planOrder(time.Now().UTC().Add(-time.Hour))
	err = cancelled.Cancel("ops.manager", "customer withdrew")
	suite.Require().NoError(err)
	err = suite.orderRepo.Add(context.Background(), cancelled)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].ID)
	suite.Equal(active.Number(), result[0].Number)
	suite.Equal("draft", result[0].Status)
	suite.Equal("Frutas Levante SL", result[0].CustomerName)
	suite.Equal("not_sent", result[0].SyncStatus)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_OrdersByScheduledStart() {
	later := planOrder(time.Now().UTC().Add(2 * time.Hour))
	err := suite.orderRepo.Add(context.Background(), later)
	suite.Require().NoError(err)

	sooner := planOrder(time.Now().UTC().Add(-3 * time.Hour))
	err = suite.orderRepo.Add(context.Background(), sooner)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(sooner.ID(), result[0].ID)
	suite.Equal(later.ID(), result[1].ID)
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
