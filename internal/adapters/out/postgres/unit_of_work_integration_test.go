package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "transtrack/internal/adapters/out/postgres"
	"transtrack/internal/adapters/out/postgres/orderrepo"
	"transtrack/internal/adapters/out/postgres/templaterepo"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transaction management across the
// order and template repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &templaterepo.TemplateDTO{})
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, workflow_templates").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.TemplateRepository())
	suite.NotNil(uow2.OrderRepository())
	suite.NotNil(uow2.TemplateRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "repeated begin must be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)

	err = uow.Rollback(ctx)
	suite.Require().ErrorIs(err, gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	tpl := createFreightTemplate()
	aggregate := createRouteOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.TemplateRepository().Add(ctx, tpl)
	suite.Require().NoError(err)

	err = aggregate.BindWorkflow(tpl.ID(), tpl.Name())
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(retrieved.WorkflowID())
	suite.Equal(tpl.ID(), *retrieved.WorkflowID())
	suite.Equal(tpl.Name(), retrieved.WorkflowName())

	retrievedTpl, err := newUow.TemplateRepository().Get(ctx, tpl.ID())
	suite.Require().NoError(err)
	suite.Equal(tpl.Name(), retrievedTpl.Name())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	tpl := createFreightTemplate()
	aggregate := createRouteOrder()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.TemplateRepository().Add(ctx, tpl)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err, "uncommitted write must be visible inside the transaction")

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().Error(err, "order should not exist after rollback")

	_, err = newUow.TemplateRepository().Get(ctx, tpl.ID())
	suite.Require().Error(err, "template should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	order1 := createRouteOrder()
	order2 := createRouteOrder()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))

	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "uow1 must not see uow2's uncommitted write")

	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "uow2 must not see uow1's uncommitted write")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	newUow := suite.factory.Create()
	_, err = newUow.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "order1 should persist after commit")

	_, err = newUow.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "order2 should not persist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	aggregate := createRouteOrder()

	err := uow.OrderRepository().Add(ctx, aggregate)
	suite.Require().NoError(err, "writes outside a transaction auto-commit")

	newUow := suite.factory.Create()
	retrieved, err := newUow.OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(aggregate.ID(), retrieved.ID())
}

// createRouteOrder builds a valid draft order with a two-checkpoint route.
func createRouteOrder() *order.Order {
	start := time.Now().Add(-4 * time.Hour)

	origin, _ := order.NewMilestone(kernel.NewUUID(), "Zaragoza Hub", "Poligono Norte 3",
		nil, start, start.Add(time.Hour))
	destination, _ := order.NewMilestone(kernel.NewUUID(), "Bilbao Port", "Muelle 2",
		nil, start.Add(5*time.Hour), time.Time{})

	cargo := order.Cargo{
		Description: "machined parts",
		Type:        order.CargoTypeGeneral,
		WeightKg:    400,
		Quantity:    8,
	}

	aggregate, _ := order.NewOrder(kernel.NewUUID(), order.NewOrderNumber(start),
		"CUST-3", "Talleres Ebro", cargo, order.PriorityNormal,
		start, start.Add(8*time.Hour), []*order.Milestone{origin, destination}, "dispatcher")
	return aggregate
}

// createFreightTemplate builds a valid single-rule template.
func createFreightTemplate() *workflow.Template {
	steps := []workflow.Step{
		{Name: "Pickup", Action: workflow.StepActionPickup, Required: true, EstimatedDurationMinutes: 60},
		{Name: "Delivery", Action: workflow.StepActionDelivery, Required: true, EstimatedDurationMinutes: 180},
	}
	rules := []workflow.EscalationRule{
		{
			Name:             "stale order",
			Condition:        workflow.EscalationNoUpdate,
			ThresholdMinutes: 120,
			Actions:          []workflow.EscalationAction{{Kind: workflow.EscalationActionFlag}},
			IsActive:         true,
		},
	}

	tpl, _ := workflow.NewTemplate(kernel.NewUUID(), "General freight", "standard route",
		steps, rules, nil, nil)
	return tpl
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
