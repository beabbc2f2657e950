package http

import (
	"net/http"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetTemplates handles GET /api/v1/templates - lists the workflow template
// catalog. ?active=true restricts to active templates.
func (s *Server) GetTemplates(ctx echo.Context) error {
	onlyActive := ctx.QueryParam("active") == "true"

	templates, err := s.getTemplatesHandler.Handle(ctx.Request().Context(),
		queries.NewGetTemplatesQuery(onlyActive))
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]templateResponse, len(templates))
	for i, row := range templates {
		response[i] = templateResponse{
			ID:          row.ID.String(),
			Name:        row.Name,
			Description: row.Description,
			Version:     row.Version,
			StepCount:   row.StepCount,
			IsDefault:   row.IsDefault,
			IsActive:    row.IsActive,
			CreatedAt:   row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateTemplate handles POST /api/v1/templates.
func (s *Server) CreateTemplate(ctx echo.Context) error {
	var request templateRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	definition, err := request.toDefinition()
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	templateID := kernel.NewUUID()
	cmd, err := commands.NewCreateTemplateCommand(templateID, definition)
	if err != nil {
		return badRequest(ctx, "Invalid template data: "+err.Error())
	}

	if err := s.createTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: templateID.String()})
}

// UpdateTemplate handles PUT /api/v1/templates/:templateID - replaces the
// template definition and bumps its version.
func (s *Server) UpdateTemplate(ctx echo.Context) error {
	templateID, err := pathUUID(ctx, "templateID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request templateRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	definition, err := request.toDefinition()
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateTemplateCommand(templateID, definition)
	if err != nil {
		return badRequest(ctx, "Invalid template data: "+err.Error())
	}

	if err := s.updateTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActivateTemplate handles POST /api/v1/templates/:templateID/activate.
func (s *Server) ActivateTemplate(ctx echo.Context) error {
	templateID, err := pathUUID(ctx, "templateID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request activateTemplateRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewActivateTemplateCommand(templateID, request.AsDefault)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.activateTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateTemplate handles POST /api/v1/templates/:templateID/deactivate.
func (s *Server) DeactivateTemplate(ctx echo.Context) error {
	templateID, err := pathUUID(ctx, "templateID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeactivateTemplateCommand(templateID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deactivateTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteTemplate handles DELETE /api/v1/templates/:templateID.
func (s *Server) DeleteTemplate(ctx echo.Context) error {
	templateID, err := pathUUID(ctx, "templateID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDeleteTemplateCommand(templateID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.deleteTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DuplicateTemplate handles POST /api/v1/templates/:templateID/duplicate -
// copies a template under a new name as an inactive draft.
func (s *Server) DuplicateTemplate(ctx echo.Context) error {
	sourceID, err := pathUUID(ctx, "templateID")
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request duplicateTemplateRequest
	if err := s.bind(ctx, &request); err != nil {
		return badRequest(ctx, err.Error())
	}

	copyID := kernel.NewUUID()
	cmd, err := commands.NewDuplicateTemplateCommand(sourceID, copyID, request.Name)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.duplicateTemplateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: copyID.String()})
}
