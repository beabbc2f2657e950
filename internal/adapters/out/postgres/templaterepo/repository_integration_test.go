package templaterepo_test

import (
	"context"
	"testing"
	"time"

	"transtrack/internal/adapters/out/postgres/templaterepo"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// TemplateRepositoryIntegrationTestSuite exercises TemplateRepository
// against a real PostgreSQL container, including the jsonb step and rule
// documents and the text-array applicability filters.
type TemplateRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *templaterepo.GormTemplateRepository
	tracker    *MockAggregateTracker
}

func (suite *TemplateRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&templaterepo.TemplateDTO{}))
}

func (suite *TemplateRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE workflow_templates").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = templaterepo.NewGormTemplateRepository(suite.db, suite.tracker)
}

func (suite *TemplateRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestAdd_ValidTemplate_Success() {
	ctx := context.Background()

	aggregate := suite.newFreightTemplate("Refrigerated freight")

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	suite.assertTemplateCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestGet_ExistingTemplate_RoundTripsAggregate() {
	ctx := context.Background()

	original := suite.newFreightTemplate("Refrigerated freight")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal("Refrigerated freight", retrieved.Name())
	suite.Equal(1, retrieved.Version())
	suite.True(retrieved.IsActive())
	suite.False(retrieved.IsDefault())

	suite.Require().Len(retrieved.Steps(), 2)
	pickup := retrieved.Steps()[0]
	suite.Equal(1, pickup.Sequence)
	suite.Equal(workflow.StepActionPickup, pickup.Action)
	suite.True(pickup.Required)
	suite.Equal(60, pickup.EstimatedDurationMinutes)
	suite.Require().NotNil(pickup.MaxDurationMinutes)
	suite.Equal(90, *pickup.MaxDurationMinutes)
	suite.Require().Len(pickup.Conditions, 1)
	suite.Equal(workflow.ConditionLocationReached, pickup.Conditions[0].Kind)
	suite.Require().Len(pickup.Notifications, 1)
	suite.Equal("email", pickup.Notifications[0].Channel)

	suite.Require().Len(retrieved.Rules(), 1)
	rule := retrieved.Rules()[0]
	suite.Equal("cold chain delay", rule.Name)
	suite.Equal(workflow.EscalationDelayThreshold, rule.Condition)
	suite.Equal(30, rule.ThresholdMinutes)
	suite.True(rule.IsActive)
	suite.Require().Len(rule.Actions, 1)
	suite.Equal(workflow.EscalationActionNotify, rule.Actions[0].Kind)

	suite.Equal([]order.CargoType{order.CargoTypeRefrigerated}, retrieved.CargoTypes())
	suite.Equal([]string{"CUST-7"}, retrieved.CustomerIDs())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestGet_NonExistentTemplate_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestUpdate_VersionBumpPersists() {
	ctx := context.Background()

	aggregate := suite.newFreightTemplate("Refrigerated freight")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	err := aggregate.Update("Refrigerated freight v2", "tightened timings",
		aggregate.Steps(), aggregate.Rules(), aggregate.CargoTypes(), nil)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	retrieved, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	suite.Equal("Refrigerated freight v2", retrieved.Name())
	suite.Equal(2, retrieved.Version())
	suite.Empty(retrieved.CustomerIDs(), "cleared customer filter must stick")

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestUpdate_NonExistentTemplate_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.newFreightTemplate("Orphan"))
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestGetDefault_TracksPromotionAndDemotion() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	_, err := suite.repository.GetDefault(ctx)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr, "no default exists yet")

	first := suite.newFreightTemplate("General freight")
	suite.Require().NoError(first.MarkDefault())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	retrieved, err := suite.repository.GetDefault(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), retrieved.ID())

	// Promote a second template and demote the first, as the activate
	// handler does within one transaction.
	second := suite.newFreightTemplate("Hazardous freight")
	suite.Require().NoError(second.MarkDefault())
	suite.Require().NoError(suite.repository.Add(ctx, second))
	first.UnmarkDefault()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	retrieved, err = suite.repository.GetDefault(ctx)
	suite.Require().NoError(err)
	suite.Equal(second.ID(), retrieved.ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestGetAll_ReturnsCreationOrder() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	names := []string{"Alpha", "Beta", "Gamma"}
	for _, name := range names {
		tpl := suite.newFreightTemplate(name)
		suite.Require().NoError(suite.repository.Add(ctx, tpl))
		time.Sleep(5 * time.Millisecond)
	}

	templates, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(templates, 3)
	for i, tpl := range templates {
		suite.Equal(names[i], tpl.Name())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TemplateRepositoryIntegrationTestSuite) TestRemove_DeletesRow() {
	ctx := context.Background()

	aggregate := suite.newFreightTemplate("Disposable")
	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	suite.Require().NoError(suite.repository.Remove(ctx, aggregate.ID()))
	suite.assertTemplateCount(0)

	err := suite.repository.Remove(ctx, aggregate.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

// newFreightTemplate builds an active template with two steps and one
// escalation rule.
func (suite *TemplateRepositoryIntegrationTestSuite) newFreightTemplate(name string) *workflow.Template {
	maxPickup := 90
	steps := []workflow.Step{
		{
			Name:                     "Pickup",
			Action:                   workflow.StepActionPickup,
			Required:                 true,
			EstimatedDurationMinutes: 60,
			MaxDurationMinutes:       &maxPickup,
			Conditions: []workflow.TransitionCondition{
				{Kind: workflow.ConditionLocationReached, Value: "origin"},
			},
			Notifications: []workflow.NotificationDecl{
				{Channel: "email", Target: "ops@example.com"},
			},
		},
		{
			Name:                     "Delivery",
			Action:                   workflow.StepActionDelivery,
			Required:                 true,
			EstimatedDurationMinutes: 240,
		},
	}
	rules := []workflow.EscalationRule{
		{
			Name:             "cold chain delay",
			Condition:        workflow.EscalationDelayThreshold,
			ThresholdMinutes: 30,
			Actions: []workflow.EscalationAction{
				{Kind: workflow.EscalationActionNotify, Channel: "email", Target: "ops@example.com"},
			},
			IsActive: true,
		},
	}

	tpl, err := workflow.NewTemplate(kernel.NewUUID(), name, "cold chain route",
		steps, rules, []order.CargoType{order.CargoTypeRefrigerated}, []string{"CUST-7"})
	suite.Require().NoError(err)
	return tpl
}

func (suite *TemplateRepositoryIntegrationTestSuite) assertTemplateCount(expected int) {
	var count int64
	err := suite.db.Model(&templaterepo.TemplateDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestTemplateRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TemplateRepositoryIntegrationTestSuite))
}
