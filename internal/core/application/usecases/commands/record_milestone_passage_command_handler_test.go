package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/core/ports"
	"transtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPassageOrderRepository struct{ mock.Mock }

func (m *MockPassageOrderRepository) Add(_ context.Context, _ *order.Order) error {
	return errors.New("not implemented in mock")
}

func (m *MockPassageOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockPassageOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockPassageOrderRepository) Remove(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}

func (m *MockPassageOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockPassageOrderRepository) GetAllPendingSync(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPassageTemplateRepository struct{ mock.Mock }

func (m *MockPassageTemplateRepository) Add(_ context.Context, _ *workflow.Template) error {
	return errors.New("not implemented in mock")
}

func (m *MockPassageTemplateRepository) Update(_ context.Context, _ *workflow.Template) error {
	return errors.New("not implemented in mock")
}

func (m *MockPassageTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*workflow.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Template), args.Error(1)
}

func (m *MockPassageTemplateRepository) GetAll(_ context.Context) ([]*workflow.Template, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockPassageTemplateRepository) GetDefault(_ context.Context) (*workflow.Template, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockPassageTemplateRepository) Remove(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}

type MockPassageUoW struct{ mock.Mock }

func (m *MockPassageUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPassageUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPassageUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPassageUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockPassageUoW) TemplateRepository() ports.TemplateRepository {
	args := m.Called()
	return args.Get(0).(ports.TemplateRepository)
}

type MockPassageUoWFactory struct{ mock.Mock }

func (m *MockPassageUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func TestRecordMilestonePassageCommandHandler_Handle_Entry(t *testing.T) {
	ctx := t.Context()
	testOrder := draftRouteOrder(t)
	origin := testOrder.Milestones()[0]
	cmd, err := commands.NewRecordMilestonePassageCommand(testOrder.ID(), origin.ID(),
		commands.PassageEntry, origin.EstimatedArrival(), false, "gps")
	require.NoError(t, err)

	repo := new(MockPassageOrderRepository)
	uow := new(MockPassageUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPassageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.StatusAtMilestone, testOrder.Status())
	assert.Equal(t, order.MilestoneStatusInProgress, origin.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordMilestonePassageCommandHandler_Handle_DelayDerivesOrderStatus(t *testing.T) {
	ctx := t.Context()
	testOrder := draftRouteOrder(t)
	origin := testOrder.Milestones()[0]
	require.NoError(t, testOrder.EnterMilestone(origin.ID(), origin.EstimatedArrival()))

	cmd, err := commands.NewRecordMilestonePassageCommand(testOrder.ID(), origin.ID(),
		commands.PassageDelay, time.Time{}, false, "monitor")
	require.NoError(t, err)

	repo := new(MockPassageOrderRepository)
	uow := new(MockPassageUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPassageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.MilestoneStatusDelayed, origin.Status())
	assert.Equal(t, order.StatusDelayed, testOrder.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRecordMilestonePassageCommandHandler_Handle_SkipRequiredStep(t *testing.T) {
	ctx := t.Context()
	testOrder := draftRouteOrder(t)
	tpl := generalCargoTemplate(t)
	require.NoError(t, testOrder.BindWorkflow(tpl.ID(), tpl.Name()))

	origin := testOrder.Milestones()[0]
	cmd, err := commands.NewRecordMilestonePassageCommand(testOrder.ID(), origin.ID(),
		commands.PassageSkip, time.Time{}, false, "dispatcher")
	require.NoError(t, err)

	repo := new(MockPassageOrderRepository)
	templateRepo := new(MockPassageTemplateRepository)
	uow := new(MockPassageUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		uow.On("TemplateRepository").Return(templateRepo).Once(),
		templateRepo.On("Get", ctx, tpl.ID()).Return(tpl, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPassageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidOperation)
	assert.Equal(t, order.MilestoneStatusPending, origin.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRecordMilestonePassageCommandHandler_Handle_SkipRequiredStepForced(t *testing.T) {
	ctx := t.Context()
	testOrder := draftRouteOrder(t)
	tpl := generalCargoTemplate(t)
	require.NoError(t, testOrder.BindWorkflow(tpl.ID(), tpl.Name()))

	origin := testOrder.Milestones()[0]
	cmd, err := commands.NewRecordMilestonePassageCommand(testOrder.ID(), origin.ID(),
		commands.PassageSkip, time.Time{}, true, "dispatcher")
	require.NoError(t, err)

	repo := new(MockPassageOrderRepository)
	uow := new(MockPassageUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPassageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.MilestoneStatusSkipped, origin.Status())
}

func TestRecordMilestonePassageCommandHandler_Handle_ManualPassage(t *testing.T) {
	ctx := t.Context()
	testOrder := draftRouteOrder(t)
	origin := testOrder.Milestones()[0]
	entry := origin.EstimatedArrival()
	exit := entry.Add(45 * time.Minute)
	cmd, err := commands.NewManualMilestonePassageCommand(testOrder.ID(), origin.ID(),
		&entry, &exit, order.ManualEntry{
			Reason:       order.ManualReasonNoGPSSignal,
			RegisteredBy: "ops.clerk",
			RegisteredAt: time.Now(),
			Comment:      "tunnel section, no signal",
		})
	require.NoError(t, err)

	repo := new(MockPassageOrderRepository)
	uow := new(MockPassageUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, testOrder.ID()).Return(testOrder, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPassageUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, order.MilestoneStatusCompleted, origin.Status())
	require.NotNil(t, origin.Manual())
	assert.Equal(t, "ops.clerk", origin.Manual().RegisteredBy)
}

func TestRecordMilestonePassageCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RecordMilestonePassageCommand{} // not constructed properly

	factory := new(MockPassageUoWFactory)
	h := commands.NewRecordMilestonePassageCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRecordMilestonePassageCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
