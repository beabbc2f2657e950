package http

import (
	"time"

	"transtrack/internal/core/application/usecases/commands"
	"transtrack/internal/core/application/usecases/queries"
	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
	"transtrack/internal/core/domain/services"
)

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse returns the server-generated identifier of a new
// resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

type cargoRequest struct {
	Description   string  `json:"description" validate:"required"`
	Type          string  `json:"type" validate:"required"`
	WeightKg      float64 `json:"weight_kg" validate:"gt=0"`
	Quantity      int     `json:"quantity" validate:"gt=0"`
	DeclaredValue float64 `json:"declared_value"`
}

type milestoneRequest struct {
	Name               string     `json:"name" validate:"required"`
	Address            string     `json:"address" validate:"required"`
	Latitude           *float64   `json:"latitude" validate:"required_with=Longitude"`
	Longitude          *float64   `json:"longitude" validate:"required_with=Latitude"`
	EstimatedArrival   time.Time  `json:"estimated_arrival" validate:"required"`
	EstimatedDeparture *time.Time `json:"estimated_departure"`
}

func (r milestoneRequest) toInput() (commands.MilestoneInput, error) {
	input := commands.MilestoneInput{
		Name:             r.Name,
		Address:          r.Address,
		EstimatedArrival: r.EstimatedArrival,
	}
	if r.EstimatedDeparture != nil {
		input.EstimatedDeparture = *r.EstimatedDeparture
	}
	if r.Latitude != nil && r.Longitude != nil {
		point, err := kernel.NewGeoPoint(*r.Latitude, *r.Longitude)
		if err != nil {
			return commands.MilestoneInput{}, err
		}
		input.Point = &point
	}
	return input, nil
}

type createOrderRequest struct {
	CustomerID     string             `json:"customer_id" validate:"required"`
	CustomerName   string             `json:"customer_name" validate:"required"`
	Cargo          cargoRequest       `json:"cargo" validate:"required"`
	Priority       string             `json:"priority" validate:"required"`
	WorkflowID     *string            `json:"workflow_id"`
	ScheduledStart time.Time          `json:"scheduled_start" validate:"required"`
	ScheduledEnd   *time.Time         `json:"scheduled_end"`
	Milestones     []milestoneRequest `json:"milestones" validate:"min=2,dive"`
	ExternalRef    string             `json:"external_ref"`
	Notes          string             `json:"notes"`
	CreatedBy      string             `json:"created_by" validate:"required"`
}

type assignTransportRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	DriverID  string `json:"driver_id" validate:"required"`
	CarrierID string `json:"carrier_id"`
	Actor     string `json:"actor" validate:"required"`
}

type changeStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Actor  string `json:"actor" validate:"required"`
	Reason string `json:"reason"`
}

type closeOrderRequest struct {
	Observations     string   `json:"observations"`
	Incidents        []string `json:"incidents"`
	DeviationReasons []string `json:"deviation_reasons"`
	ClosedBy         string   `json:"closed_by" validate:"required"`
}

type insertMilestoneRequest struct {
	Milestone milestoneRequest `json:"milestone" validate:"required"`
	Position  int              `json:"position" validate:"gt=0"`
	Actor     string           `json:"actor" validate:"required"`
}

// updateMilestoneRequest patches a checkpoint's estimated window and
// geofence link. Omitted fields are left untouched.
type updateMilestoneRequest struct {
	EstimatedArrival   *time.Time `json:"estimated_arrival"`
	EstimatedDeparture *time.Time `json:"estimated_departure"`
	GeofenceID         *string    `json:"geofence_id"`
	Actor              string     `json:"actor" validate:"required"`
}

// recordPassageRequest covers the automatic kinds (entry, exit, approach,
// delay, skip) and the manual registration. The manual fields are ignored
// for automatic kinds and vice versa.
type recordPassageRequest struct {
	Kind  string     `json:"kind" validate:"required,oneof=entry exit approach delay skip manual"`
	At    *time.Time `json:"at"`
	Force bool       `json:"force"`
	Actor string     `json:"actor"`

	Entry        *time.Time `json:"entry"`
	Exit         *time.Time `json:"exit"`
	Reason       string     `json:"reason"`
	RegisteredBy string     `json:"registered_by"`
	Comment      string     `json:"comment"`
}

type importOrdersRequest struct {
	Headers      []string            `json:"headers" validate:"required,min=1"`
	Rows         []map[string]string `json:"rows" validate:"required,min=1"`
	SkipInvalid  bool                `json:"skip_invalid"`
	SkipWarnings bool                `json:"skip_warnings"`
	ImportedBy   string              `json:"imported_by" validate:"required"`
}

func (r importOrdersRequest) rawRows() []services.RawRow {
	rows := make([]services.RawRow, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = services.RawRow(row)
	}
	return rows
}

type dispatchSyncRequest struct {
	Limit int `json:"limit" validate:"gt=0"`
}

type conditionRequest struct {
	Kind  string `json:"kind" validate:"required"`
	Value string `json:"value"`
}

type notificationRequest struct {
	Channel string `json:"channel" validate:"required"`
	Target  string `json:"target" validate:"required"`
}

type stepRequest struct {
	Name                     string                `json:"name" validate:"required"`
	Action                   string                `json:"action" validate:"required"`
	Required                 bool                  `json:"required"`
	Skippable                bool                  `json:"skippable"`
	EstimatedDurationMinutes int                   `json:"estimated_duration_minutes" validate:"gt=0"`
	MaxDurationMinutes       *int                  `json:"max_duration_minutes"`
	Conditions               []conditionRequest    `json:"conditions" validate:"dive"`
	Notifications            []notificationRequest `json:"notifications" validate:"dive"`
}

type ruleRequest struct {
	Name             string          `json:"name" validate:"required"`
	Condition        string          `json:"condition" validate:"required"`
	ThresholdMinutes int             `json:"threshold_minutes" validate:"gt=0"`
	StepSequences    []int           `json:"step_sequences"`
	Actions          []actionRequest `json:"actions" validate:"dive"`
	IsActive         bool            `json:"is_active"`
}

type actionRequest struct {
	Kind    string `json:"kind" validate:"required"`
	Channel string `json:"channel"`
	Target  string `json:"target"`
}

type templateRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Steps       []stepRequest `json:"steps" validate:"min=1,dive"`
	Rules       []ruleRequest `json:"rules" validate:"dive"`
	CargoTypes  []string      `json:"cargo_types"`
	CustomerIDs []string      `json:"customer_ids"`
}

// toDefinition converts the wire template into the command payload. Step
// sequences are assigned by the aggregate, so the wire order is the plan
// order.
func (r templateRequest) toDefinition() (commands.TemplateDefinition, error) {
	steps := make([]workflow.Step, len(r.Steps))
	for i, s := range r.Steps {
		conditions := make([]workflow.TransitionCondition, len(s.Conditions))
		for j, c := range s.Conditions {
			conditions[j] = workflow.TransitionCondition{
				Kind:  workflow.ConditionKind(c.Kind),
				Value: c.Value,
			}
		}
		notifications := make([]workflow.NotificationDecl, len(s.Notifications))
		for j, n := range s.Notifications {
			notifications[j] = workflow.NotificationDecl{Channel: n.Channel, Target: n.Target}
		}
		steps[i] = workflow.Step{
			Name:                     s.Name,
			Action:                   workflow.StepAction(s.Action),
			Required:                 s.Required,
			Skippable:                s.Skippable,
			EstimatedDurationMinutes: s.EstimatedDurationMinutes,
			MaxDurationMinutes:       s.MaxDurationMinutes,
			Conditions:               conditions,
			Notifications:            notifications,
		}
	}

	rules := make([]workflow.EscalationRule, len(r.Rules))
	for i, rule := range r.Rules {
		actions := make([]workflow.EscalationAction, len(rule.Actions))
		for j, a := range rule.Actions {
			actions[j] = workflow.EscalationAction{
				Kind:    workflow.EscalationActionKind(a.Kind),
				Channel: a.Channel,
				Target:  a.Target,
			}
		}
		rules[i] = workflow.EscalationRule{
			Name:             rule.Name,
			Condition:        workflow.EscalationCondition(rule.Condition),
			ThresholdMinutes: rule.ThresholdMinutes,
			StepSequences:    rule.StepSequences,
			Actions:          actions,
			IsActive:         rule.IsActive,
		}
	}

	cargoTypes := make([]order.CargoType, len(r.CargoTypes))
	for i, raw := range r.CargoTypes {
		parsed, err := order.ParseCargoType(raw)
		if err != nil {
			return commands.TemplateDefinition{}, err
		}
		cargoTypes[i] = parsed
	}

	return commands.TemplateDefinition{
		Name:        r.Name,
		Description: r.Description,
		Steps:       steps,
		Rules:       rules,
		CargoTypes:  cargoTypes,
		CustomerIDs: r.CustomerIDs,
	}, nil
}

type duplicateTemplateRequest struct {
	Name string `json:"name" validate:"required"`
}

type activateTemplateRequest struct {
	AsDefault bool `json:"as_default"`
}

type orderResponse struct {
	ID             string                  `json:"id"`
	Number         string                  `json:"number"`
	Status         string                  `json:"status"`
	Priority       string                  `json:"priority"`
	CustomerID     string                  `json:"customer_id"`
	CustomerName   string                  `json:"customer_name"`
	VehicleID      *string                 `json:"vehicle_id,omitempty"`
	DriverID       *string                 `json:"driver_id,omitempty"`
	WorkflowName   string                  `json:"workflow_name,omitempty"`
	Completion     int                     `json:"completion"`
	SyncStatus     string                  `json:"sync_status"`
	SyncError      string                  `json:"sync_error,omitempty"`
	ScheduledStart time.Time               `json:"scheduled_start"`
	ScheduledEnd   *time.Time              `json:"scheduled_end,omitempty"`
	ActualStart    *time.Time              `json:"actual_start,omitempty"`
	ActualEnd      *time.Time              `json:"actual_end,omitempty"`
	Milestones     []queries.MilestoneView `json:"milestones"`
	Notes          string                  `json:"notes,omitempty"`
}

func toOrderResponse(view queries.GetOrderQueryResponse) orderResponse {
	return orderResponse{
		ID:             view.ID.String(),
		Number:         view.Number,
		Status:         view.Status,
		Priority:       view.Priority,
		CustomerID:     view.CustomerID,
		CustomerName:   view.CustomerName,
		VehicleID:      view.VehicleID,
		DriverID:       view.DriverID,
		WorkflowName:   view.WorkflowName,
		Completion:     view.Completion,
		SyncStatus:     view.SyncStatus,
		SyncError:      view.SyncError,
		ScheduledStart: view.ScheduledStart,
		ScheduledEnd:   view.ScheduledEnd,
		ActualStart:    view.ActualStart,
		ActualEnd:      view.ActualEnd,
		Milestones:     view.Milestones,
		Notes:          view.Notes,
	}
}

type activeOrderResponse struct {
	ID             string     `json:"id"`
	Number         string     `json:"number"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority"`
	CustomerName   string     `json:"customer_name"`
	Completion     int        `json:"completion"`
	SyncStatus     string     `json:"sync_status"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end,omitempty"`
}

type templateResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Version     int       `json:"version"`
	StepCount   int       `json:"step_count"`
	IsDefault   bool      `json:"is_default"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type escalationResponse struct {
	RuleName  string `json:"rule_name"`
	Condition string `json:"condition"`
	Triggered bool   `json:"triggered"`
	Message   string `json:"message,omitempty"`
}

type importRowResponse struct {
	Index       int      `json:"index"`
	Status      string   `json:"status"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Skipped     bool     `json:"skipped"`
	OrderID     string   `json:"order_id,omitempty"`
	OrderNumber string   `json:"order_number,omitempty"`
}

type importResponse struct {
	MissingColumns []string            `json:"missing_columns,omitempty"`
	UnknownColumns []string            `json:"unknown_columns,omitempty"`
	Rows           []importRowResponse `json:"rows"`
	TotalRows      int                 `json:"total_rows"`
	ValidRows      int                 `json:"valid_rows"`
	WarningRows    int                 `json:"warning_rows"`
	InvalidRows    int                 `json:"invalid_rows"`
	Created        int                 `json:"created"`
}

func toImportResponse(result commands.ImportResult) importResponse {
	rows := make([]importRowResponse, len(result.Rows))
	for i, row := range result.Rows {
		rows[i] = importRowResponse{
			Index:       row.Index,
			Status:      string(row.Status),
			Errors:      row.Errors,
			Warnings:    row.Warnings,
			Skipped:     row.Skipped,
			OrderID:     row.OrderID,
			OrderNumber: row.OrderNumber,
		}
	}
	return importResponse{
		MissingColumns: result.Header.MissingRequired,
		UnknownColumns: result.Header.Unknown,
		Rows:           rows,
		TotalRows:      result.TotalRows,
		ValidRows:      result.ValidRows,
		WarningRows:    result.WarningRows,
		InvalidRows:    result.InvalidRows,
		Created:        result.Created,
	}
}
