package commands_test

import (
	"testing"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteTemplateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tpl := generalCargoTemplate(t)
	require.NoError(t, tpl.Deactivate())
	cmd, err := commands.NewDeleteTemplateCommand(tpl.ID())
	require.NoError(t, err)

	repo := new(MockWorkflowTemplateRepository)
	uow := new(MockTemplateUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(repo).Once(),
		repo.On("Get", ctx, tpl.ID()).Return(tpl, nil).Once(),
		repo.On("Remove", ctx, tpl.ID()).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTemplateUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteTemplateCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteTemplateCommandHandler_Handle_ActiveTemplateRefused(t *testing.T) {
	ctx := t.Context()
	tpl := generalCargoTemplate(t) // active by construction
	cmd, err := commands.NewDeleteTemplateCommand(tpl.ID())
	require.NoError(t, err)

	repo := new(MockWorkflowTemplateRepository)
	uow := new(MockTemplateUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(repo).Once(),
		repo.On("Get", ctx, tpl.ID()).Return(tpl, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTemplateUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteTemplateCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidOperation)
	repo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
}

func TestDuplicateTemplateCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	source := generalCargoTemplate(t)
	copyID := kernel.NewUUID()
	cmd, err := commands.NewDuplicateTemplateCommand(source.ID(), copyID, "General freight v2")
	require.NoError(t, err)

	repo := new(MockWorkflowTemplateRepository)
	uow := new(MockTemplateUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("TemplateRepository").Return(repo).Once(),
		repo.On("Get", ctx, source.ID()).Return(source, nil).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*workflow.Template")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockTemplateUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDuplicateTemplateCommandHandler(factory)
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	added := repo.Calls[1].Arguments[1].(*workflow.Template)
	assert.Equal(t, copyID, added.ID())
	assert.Equal(t, "General freight v2", added.Name())
	assert.False(t, added.IsActive())
	repo.AssertExpectations(t)
}
