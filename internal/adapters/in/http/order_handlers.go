package http

import (
	"net/http"
	"time"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const defaultDispatchLimit = 50

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// CreateOrder handles POST /api/v1/orders - registers a transport order
// with its route plan.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request createOrderRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	priority, err := order.ParsePriority(request.Priority)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	cargoType, err := order.ParseCargoType(request.Cargo.Type)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var workflowID *kernel.UUID
	if request.WorkflowID != nil {
		id, idErr := kernel.UUIDFromString(*request.WorkflowID)
		if idErr != nil {
			return badRequest(ctx, idErr.Error())
		}
		workflowID = &id
	}

	milestones := make([]commands.MilestoneInput, len(request.Milestones))
	for i, m := range request.Milestones {
		input, inputErr := m.toInput()
		if inputErr != nil {
			return badRequest(ctx, inputErr.Error())
		}
		milestones[i] = input
	}

	var scheduledEnd time.Time
	if request.ScheduledEnd != nil {
		scheduledEnd = *request.ScheduledEnd
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, request.CustomerID, request.CustomerName,
		order.Cargo{
			Description:   request.Cargo.Description,
			Type:          cargoType,
			WeightKg:      request.Cargo.WeightKg,
			Quantity:      request.Cargo.Quantity,
			DeclaredValue: request.Cargo.DeclaredValue,
		},
		priority, workflowID, request.ScheduledStart, scheduledEnd,
		milestones, request.ExternalRef, request.Notes, request.CreatedBy)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderID - retrieves the full
// tracking view of one order.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(view))
}

// GetActiveOrders handles GET /api/v1/orders/active - lists every order
// that has not reached a terminal status.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]activeOrderResponse, len(orders))
	for i, row := range orders {
		response[i] = activeOrderResponse{
			ID:             row.ID.String(),
			Number:         row.Number,
			Status:         row.Status,
			Priority:       row.Priority,
			CustomerName:   row.CustomerName,
			Completion:     row.Completion,
			SyncStatus:     row.SyncStatus,
			ScheduledStart: row.ScheduledStart,
			ScheduledEnd:   row.ScheduledEnd,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// DeleteOrder handles DELETE /api/v1/orders/:orderID - removes a draft
// order.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deleteOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignTransport handles POST /api/v1/orders/:orderID/transport.
func (s *Server) AssignTransport(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request assignTransportRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignTransportCommand(orderID,
		request.VehicleID, request.DriverID, request.CarrierID, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignTransportHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/:orderID/status - moves an
// order along its lifecycle.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request changeStatusRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	target, err := order.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, request.Actor, request.Reason)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CloseOrder handles POST /api/v1/orders/:orderID/close - closes a
// delivered order with the operator's review.
func (s *Server) CloseOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request closeOrderRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCloseOrderCommand(orderID, request.Observations,
		request.Incidents, request.DeviationReasons, request.ClosedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.closeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// InsertMilestone handles POST /api/v1/orders/:orderID/milestones - adds a
// waypoint to the active route.
func (s *Server) InsertMilestone(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request insertMilestoneRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	input, err := request.Milestone.toInput()
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewInsertMilestoneCommand(orderID, input, request.Position, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.insertMilestoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateMilestone handles PATCH /api/v1/orders/:orderID/milestones/:milestoneID -
// reschedules a waypoint's estimated window or links it to a geofence.
func (s *Server) UpdateMilestone(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	milestoneID, err := pathUUID(ctx, "milestoneID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request updateMilestoneRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	var arrival, departure time.Time
	if request.EstimatedArrival != nil {
		arrival = *request.EstimatedArrival
	}
	if request.EstimatedDeparture != nil {
		departure = *request.EstimatedDeparture
	}

	var geofenceID *kernel.UUID
	if request.GeofenceID != nil {
		id, idErr := kernel.UUIDFromString(*request.GeofenceID)
		if idErr != nil {
			return badRequest(ctx, idErr.Error())
		}
		geofenceID = &id
	}

	cmd, err := commands.NewUpdateMilestoneCommand(orderID, milestoneID,
		arrival, departure, geofenceID, request.Actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateMilestoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveMilestone handles DELETE /api/v1/orders/:orderID/milestones/:milestoneID.
// The acting operator comes in the actor query parameter.
func (s *Server) RemoveMilestone(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	milestoneID, err := pathUUID(ctx, "milestoneID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewRemoveMilestoneCommand(orderID, milestoneID, ctx.QueryParam("actor"))
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.removeMilestoneHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordMilestonePassage handles POST
// /api/v1/orders/:orderID/milestones/:milestoneID/passages - records an
// entry, exit, approach, delay, skip or manual passage at a checkpoint.
func (s *Server) RecordMilestonePassage(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	milestoneID, err := pathUUID(ctx, "milestoneID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request recordPassageRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	var cmd commands.RecordMilestonePassageCommand
	if commands.PassageKind(request.Kind) == commands.PassageManual {
		cmd, err = commands.NewManualMilestonePassageCommand(orderID, milestoneID,
			request.Entry, request.Exit, order.ManualEntry{
				Reason:       order.ManualReason(request.Reason),
				RegisteredBy: request.RegisteredBy,
				RegisteredAt: time.Now().UTC(),
				Comment:      request.Comment,
			})
	} else {
		at := time.Now().UTC()
		if request.At != nil {
			at = *request.At
		}
		cmd, err = commands.NewRecordMilestonePassageCommand(orderID, milestoneID,
			commands.PassageKind(request.Kind), at, request.Force, request.Actor)
	}
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.recordPassageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EvaluateEscalations handles GET /api/v1/orders/:orderID/escalations -
// checks one order against the escalation rules of its workflow.
func (s *Server) EvaluateEscalations(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewEvaluateEscalationsQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	results, err := s.evaluateEscalationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]escalationResponse, len(results))
	for i, result := range results {
		response[i] = escalationResponse{
			RuleName:  result.RuleName,
			Condition: string(result.Condition),
			Triggered: result.Triggered,
			Message:   result.Message,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ImportOrders handles POST /api/v1/orders/import - validates a batch of
// tabular rows and creates an order per surviving row.
func (s *Server) ImportOrders(ctx echo.Context) error {
	var request importOrdersRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewImportOrdersCommand(request.Headers, request.rawRows(),
		commands.ImportPolicy{
			SkipInvalid:  request.SkipInvalid,
			SkipWarnings: request.SkipWarnings,
		}, request.ImportedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	result, err := s.importOrdersHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toImportResponse(result))
}

// DispatchOrderSync handles POST /api/v1/sync/dispatch - pushes queued
// orders to the external planning system on demand.
func (s *Server) DispatchOrderSync(ctx echo.Context) error {
	request := dispatchSyncRequest{Limit: defaultDispatchLimit}
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDispatchOrderSyncCommand(request.Limit)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.dispatchOrderSyncHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}
