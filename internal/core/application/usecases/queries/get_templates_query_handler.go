package queries

import (
	"context"
	"encoding/json"

	"transtrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetTemplatesQueryHandler lists workflow templates from the database.
// The step count is derived from the stored step definitions.
type GetTemplatesQueryHandler struct {
	db *gorm.DB
}

// NewGetTemplatesQueryHandler creates a handler for template catalog
// queries.
func NewGetTemplatesQueryHandler(db *gorm.DB) GetTemplatesQueryHandler {
	return GetTemplatesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetTemplatesQueryHandler) Handle(
	ctx context.Context,
	query GetTemplatesQuery,
) ([]GetTemplatesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `
		SELECT
			id,
			name,
			description,
			version,
			steps,
			is_default,
			is_active,
			created_at
		FROM workflow_templates
	`
	if query.OnlyActive() {
		stmt += ` WHERE is_active`
	}
	stmt += ` ORDER BY created_at, name`

	rows, err := h.db.WithContext(ctx).Raw(stmt).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]GetTemplatesQueryResponse, 0)
	for rows.Next() {
		var (
			resp    GetTemplatesQueryResponse
			id      string
			stepsJS []byte
		)
		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Description,
			&resp.Version,
			&stepsJS,
			&resp.IsDefault,
			&resp.IsActive,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.ID, err = kernel.UUIDFromString(id)
		if err != nil {
			return nil, err
		}

		if len(stepsJS) > 0 {
			var steps []json.RawMessage
			if err = json.Unmarshal(stepsJS, &steps); err != nil {
				return nil, err
			}
			resp.StepCount = len(steps)
		}
		templates = append(templates, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}
