package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order row, decoding the milestone plan
// from its jsonb column.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order detail queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError when no order
// has the requested id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			priority,
			customer_id,
			customer_name,
			vehicle_id,
			driver_id,
			workflow_name,
			completion,
			sync_status,
			sync_error,
			scheduled_start,
			scheduled_end,
			actual_start,
			actual_end,
			milestones,
			notes
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var (
		resp         GetOrderQueryResponse
		id           string
		milestonesJS []byte
	)
	err := row.Scan(
		&id,
		&resp.Number,
		&resp.Status,
		&resp.Priority,
		&resp.CustomerID,
		&resp.CustomerName,
		&resp.VehicleID,
		&resp.DriverID,
		&resp.WorkflowName,
		&resp.Completion,
		&resp.SyncStatus,
		&resp.SyncError,
		&resp.ScheduledStart,
		&resp.ScheduledEnd,
		&resp.ActualStart,
		&resp.ActualEnd,
		&milestonesJS,
		&resp.Notes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.ID, err = kernel.UUIDFromString(id)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if len(milestonesJS) > 0 {
		if err = json.Unmarshal(milestonesJS, &resp.Milestones); err != nil {
			return GetOrderQueryResponse{}, err
		}
	}

	return resp, nil
}
