// Package http exposes the tracking API over Echo. Handlers bind and
// validate request bodies, translate them into commands or queries and
// map domain errors onto HTTP statuses.
package http

import (
	"errors"
	"net/http"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler        commands.CreateOrderCommandHandler
	assignTransportHandler    commands.AssignTransportCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	closeOrderHandler         commands.CloseOrderCommandHandler
	deleteOrderHandler        commands.DeleteOrderCommandHandler
	recordPassageHandler      commands.RecordMilestonePassageCommandHandler
	insertMilestoneHandler    commands.InsertMilestoneCommandHandler
	updateMilestoneHandler    commands.UpdateMilestoneCommandHandler
	removeMilestoneHandler    commands.RemoveMilestoneCommandHandler
	importOrdersHandler       commands.ImportOrdersCommandHandler
	dispatchOrderSyncHandler  commands.DispatchOrderSyncCommandHandler
	createTemplateHandler     commands.CreateTemplateCommandHandler
	updateTemplateHandler     commands.UpdateTemplateCommandHandler
	activateTemplateHandler   commands.ActivateTemplateCommandHandler
	deactivateTemplateHandler commands.DeactivateTemplateCommandHandler
	deleteTemplateHandler     commands.DeleteTemplateCommandHandler
	duplicateTemplateHandler  commands.DuplicateTemplateCommandHandler

	// Query handlers
	getOrderHandler            queries.GetOrderQueryHandler
	getActiveOrdersHandler     queries.GetActiveOrdersQueryHandler
	getTemplatesHandler        queries.GetTemplatesQueryHandler
	evaluateEscalationsHandler queries.EvaluateEscalationsQueryHandler

	validate *validator.Validate
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	assignTransportHandler commands.AssignTransportCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	closeOrderHandler commands.CloseOrderCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	recordPassageHandler commands.RecordMilestonePassageCommandHandler,
	insertMilestoneHandler commands.InsertMilestoneCommandHandler,
	updateMilestoneHandler commands.UpdateMilestoneCommandHandler,
	removeMilestoneHandler commands.RemoveMilestoneCommandHandler,
	importOrdersHandler commands.ImportOrdersCommandHandler,
	dispatchOrderSyncHandler commands.DispatchOrderSyncCommandHandler,
	createTemplateHandler commands.CreateTemplateCommandHandler,
	updateTemplateHandler commands.UpdateTemplateCommandHandler,
	activateTemplateHandler commands.ActivateTemplateCommandHandler,
	deactivateTemplateHandler commands.DeactivateTemplateCommandHandler,
	deleteTemplateHandler commands.DeleteTemplateCommandHandler,
	duplicateTemplateHandler commands.DuplicateTemplateCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getTemplatesHandler queries.GetTemplatesQueryHandler,
	evaluateEscalationsHandler queries.EvaluateEscalationsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		assignTransportHandler:     assignTransportHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		closeOrderHandler:          closeOrderHandler,
		deleteOrderHandler:         deleteOrderHandler,
		recordPassageHandler:       recordPassageHandler,
		insertMilestoneHandler:     insertMilestoneHandler,
		updateMilestoneHandler:     updateMilestoneHandler,
		removeMilestoneHandler:     removeMilestoneHandler,
		importOrdersHandler:        importOrdersHandler,
		dispatchOrderSyncHandler:   dispatchOrderSyncHandler,
		createTemplateHandler:      createTemplateHandler,
		updateTemplateHandler:      updateTemplateHandler,
		activateTemplateHandler:    activateTemplateHandler,
		deactivateTemplateHandler:  deactivateTemplateHandler,
		deleteTemplateHandler:      deleteTemplateHandler,
		duplicateTemplateHandler:   duplicateTemplateHandler,
		getOrderHandler:            getOrderHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getTemplatesHandler:        getTemplatesHandler,
		evaluateEscalationsHandler: evaluateEscalationsHandler,
		validate:                   validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the API on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/import", s.ImportOrders)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderID", s.GetOrder)
	api.DELETE("/orders/:orderID", s.DeleteOrder)
	api.POST("/orders/:orderID/transport", s.AssignTransport)
	api.POST("/orders/:orderID/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderID/close", s.CloseOrder)
	api.POST("/orders/:orderID/milestones", s.InsertMilestone)
	api.PATCH("/orders/:orderID/milestones/:milestoneID", s.UpdateMilestone)
	api.DELETE("/orders/:orderID/milestones/:milestoneID", s.RemoveMilestone)
	api.POST("/orders/:orderID/milestones/:milestoneID/passages", s.RecordMilestonePassage)
	api.GET("/orders/:orderID/escalations", s.EvaluateEscalations)
	api.POST("/sync/dispatch", s.DispatchOrderSync)

	api.GET("/templates", s.GetTemplates)
	api.POST("/templates", s.CreateTemplate)
	api.PUT("/templates/:templateID", s.UpdateTemplate)
	api.DELETE("/templates/:templateID", s.DeleteTemplate)
	api.POST("/templates/:templateID/activate", s.ActivateTemplate)
	api.POST("/templates/:templateID/deactivate", s.DeactivateTemplate)
	api.POST("/templates/:templateID/duplicate", s.DuplicateTemplate)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// bind decodes and validates a request body. A non-nil error means the
// caller should answer 400 with the message.
func (s *Server) bind(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return errors.New("invalid request body")
	}
	return s.validate.Struct(request)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps a use case failure onto an HTTP response. Validation
// failures are client errors, missing objects are 404, rejected state
// transitions and stale writes are conflicts, everything else is a 500.
func domainError(ctx echo.Context, err error) error {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrCannotClose),
		errors.Is(err, errs.ErrInvalidOperation),
		errors.Is(err, errs.ErrVersionIsInvalid):
		code = http.StatusConflict
	}

	return ctx.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}
