package cmd

import (
	"transtrack/internal/adapters/out/postgres"
	"transtrack/internal/adapters/out/synchttp"
	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	gateway    ports.SyncGateway
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, publisher ports.EventPublisher) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		gateway:    synchttp.NewGateway(configs.SyncEndpoint, configs.SyncAPIKey),
	}
}

// Publisher exposes the event bus publisher for jobs that announce
// outside the command handlers.
func (c *CompositionRoot) Publisher() ports.EventPublisher {
	return c.publisher
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) templateUoWFactory() commands.TemplateUoWFactory {
	return FuncTemplateUoWFactory(func() commands.TemplateUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) escalationUoWFactory() queries.EscalationUoWFactory {
	return FuncEscalationUoWFactory(func() queries.EscalationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAssignTransportCommandHandler() commands.AssignTransportCommandHandler {
	return commands.NewAssignTransportCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCloseOrderCommandHandler() commands.CloseOrderCommandHandler {
	return commands.NewCloseOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRecordMilestonePassageCommandHandler() commands.RecordMilestonePassageCommandHandler {
	return commands.NewRecordMilestonePassageCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateInsertMilestoneCommandHandler() commands.InsertMilestoneCommandHandler {
	return commands.NewInsertMilestoneCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateMilestoneCommandHandler() commands.UpdateMilestoneCommandHandler {
	return commands.NewUpdateMilestoneCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRemoveMilestoneCommandHandler() commands.RemoveMilestoneCommandHandler {
	return commands.NewRemoveMilestoneCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateImportOrdersCommandHandler() commands.ImportOrdersCommandHandler {
	return commands.NewImportOrdersCommandHandler(c.uoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDispatchOrderSyncCommandHandler() commands.DispatchOrderSyncCommandHandler {
	return commands.NewDispatchOrderSyncCommandHandler(c.orderUoWFactory(), c.gateway)
}

func (c *CompositionRoot) CreateCreateTemplateCommandHandler() commands.CreateTemplateCommandHandler {
	return commands.NewCreateTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateUpdateTemplateCommandHandler() commands.UpdateTemplateCommandHandler {
	return commands.NewUpdateTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateActivateTemplateCommandHandler() commands.ActivateTemplateCommandHandler {
	return commands.NewActivateTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateDeactivateTemplateCommandHandler() commands.DeactivateTemplateCommandHandler {
	return commands.NewDeactivateTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateDeleteTemplateCommandHandler() commands.DeleteTemplateCommandHandler {
	return commands.NewDeleteTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateDuplicateTemplateCommandHandler() commands.DuplicateTemplateCommandHandler {
	return commands.NewDuplicateTemplateCommandHandler(c.templateUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTemplatesQueryHandler() queries.GetTemplatesQueryHandler {
	return queries.NewGetTemplatesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateEvaluateEscalationsQueryHandler() queries.EvaluateEscalationsQueryHandler {
	return queries.NewEvaluateEscalationsQueryHandler(c.escalationUoWFactory())
}

func (c *CompositionRoot) CreateEscalationSweepQueryHandler() queries.EscalationSweepQueryHandler {
	return queries.NewEscalationSweepQueryHandler(c.escalationUoWFactory())
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTemplateUoWFactory func() commands.TemplateUoW

func (f FuncTemplateUoWFactory) Create() commands.TemplateUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncEscalationUoWFactory func() queries.EscalationUoW

func (f FuncEscalationUoWFactory) Create() queries.EscalationUoW {
	return f()
}
