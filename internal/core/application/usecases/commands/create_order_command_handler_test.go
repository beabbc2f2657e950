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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *MockOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) Remove(_ context.Context, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockOrderRepository) GetAllPendingSync(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockTemplateRepository struct{ mock.Mock }

func (m *MockTemplateRepository) Add(ctx context.Context, tpl *workflow.Template) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Update(ctx context.Context, tpl *workflow.Template) error {
	args := m.Called(ctx, tpl)
	return args.Error(0)
}

func (m *MockTemplateRepository) Get(ctx context.Context, id kernel.UUID) (*workflow.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetAll(ctx context.Context) ([]*workflow.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*workflow.Template), args.Error(1)
}

func (m *MockTemplateRepository) GetDefault(ctx context.Context) (*workflow.Template, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*workflow.Template), args.Error(1)
}

func (m *MockTemplateRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) TemplateRepository() ports.TemplateRepository {
	args := m.Called()
	return args.Get(0).(ports.TemplateRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

func validCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	start := time.Now().Add(time.Hour)
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "CUST-1", "Acme Foods",
		testCargo(), order.PriorityNormal, nil, start, start.Add(8*time.Hour),
		testMilestoneInputs(start), "", "", "dispatcher")
	require.NoError(t, err)
	return cmd
}

func generalCargoTemplate(t *testing.T) *workflow.Template {
	t.Helper()
	steps := []workflow.Step{
		{Name: "Pickup", Action: workflow.StepActionPickup, Required: true, EstimatedDurationMinutes: 60},
		{Name: "Delivery", Action: workflow.StepActionDelivery, Required: true, EstimatedDurationMinutes: 120},
	}
	tpl, err := workflow.NewTemplate(kernel.NewUUID(), "General freight", "",
		steps, nil, []order.CargoType{order.CargoTypeGeneral}, nil)
	require.NoError(t, err)
	return tpl
}

func TestCreateOrderCommandHandler_Handle_Success_NoTemplate(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	templateRepo := new(MockTemplateRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(templateRepo).Once(),
		templateRepo.On("GetAll", ctx).Return([]*workflow.Template{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	assert.Equal(t, order.StatusDraft, added.Status())
	assert.Equal(t, order.SyncStatusPending, added.SyncStatus())
	assert.Nil(t, added.WorkflowID())

	orderRepo.AssertExpectations(t)
	templateRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_Success_TemplateMatch(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)
	tpl := generalCargoTemplate(t)

	orderRepo := new(MockOrderRepository)
	templateRepo := new(MockTemplateRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(templateRepo).Once(),
		templateRepo.On("GetAll", ctx).Return([]*workflow.Template{tpl}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := orderRepo.Calls[0].Arguments[1].(*order.Order)
	require.NotNil(t, added.WorkflowID())
	assert.Equal(t, tpl.ID(), *added.WorkflowID())
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.EqualError(t, err, "begin error")
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	templateRepo := new(MockTemplateRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(templateRepo).Once(),
		templateRepo.On("GetAll", ctx).Return([]*workflow.Template{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.EqualError(t, err, "add error")
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	cmd := validCreateOrderCommand(t)

	orderRepo := new(MockOrderRepository)
	templateRepo := new(MockTemplateRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(templateRepo).Once(),
		templateRepo.On("GetAll", ctx).Return([]*workflow.Template{}, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCreateOrderCommandHandler(factory, nil)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.EqualError(t, err, "commit error")
}
