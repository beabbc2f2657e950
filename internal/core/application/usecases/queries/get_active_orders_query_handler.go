package queries

import (
	"context"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler lists non-terminal orders straight from the
// database, most urgent schedule first.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order
// listings.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			priority,
			customer_name,
			completion,
			sync_status,
			scheduled_start,
			scheduled_end
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY scheduled_start, number
	`, order.StatusClosed.String(), order.StatusCancelled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp GetActiveOrdersQueryResponse
			id   string
		)
		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.Status,
			&resp.Priority,
			&resp.CustomerName,
			&resp.Completion,
			&resp.SyncStatus,
			&resp.ScheduledStart,
			&resp.ScheduledEnd,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromString(id)
		if err != nil {
			return nil, err
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
