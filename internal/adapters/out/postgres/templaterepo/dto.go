// Package templaterepo persists workflow template aggregates. Step and
// escalation rule definitions are stored as jsonb documents; the
// applicability filters use native Postgres text arrays so they stay
// queryable without unpacking json.
package templaterepo

import (
	"encoding/json"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// TemplateDTO is the database row for one workflow template.
type TemplateDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"index"`
	Description string
	Version     int
	Steps       []byte         `gorm:"type:jsonb"`
	Rules       []byte         `gorm:"type:jsonb"`
	CargoTypes  pq.StringArray `gorm:"type:text[]"`
	CustomerIDs pq.StringArray `gorm:"type:text[]"`
	IsDefault   bool           `gorm:"index"`
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming to use "workflow_templates".
func (TemplateDTO) TableName() string {
	return "workflow_templates"
}

type conditionDTO struct {
	Kind  string `json:"kind"`
	Value string `json:"value,omitempty"`
}

type notificationDTO struct {
	Channel string `json:"channel"`
	Target  string `json:"target"`
}

type stepDTO struct {
	Sequence                 int               `json:"sequence"`
	Name                     string            `json:"name"`
	Action                   string            `json:"action"`
	Required                 bool              `json:"required"`
	Skippable                bool              `json:"skippable"`
	EstimatedDurationMinutes int               `json:"estimated_duration_minutes"`
	MaxDurationMinutes       *int              `json:"max_duration_minutes,omitempty"`
	Conditions               []conditionDTO    `json:"conditions,omitempty"`
	Notifications            []notificationDTO `json:"notifications,omitempty"`
}

type actionDTO struct {
	Kind    string `json:"kind"`
	Channel string `json:"channel,omitempty"`
	Target  string `json:"target,omitempty"`
}

type ruleDTO struct {
	Name             string      `json:"name"`
	Condition        string      `json:"condition"`
	ThresholdMinutes int         `json:"threshold_minutes"`
	StepSequences    []int       `json:"step_sequences,omitempty"`
	Actions          []actionDTO `json:"actions,omitempty"`
	IsActive         bool        `json:"is_active"`
}

// fromDomain converts a template aggregate to its database row.
func fromDomain(aggregate *workflow.Template) (TemplateDTO, error) {
	steps := make([]stepDTO, 0, len(aggregate.Steps()))
	for _, s := range aggregate.Steps() {
		conditions := make([]conditionDTO, 0, len(s.Conditions))
		for _, c := range s.Conditions {
			conditions = append(conditions, conditionDTO{Kind: string(c.Kind), Value: c.Value})
		}
		notifications := make([]notificationDTO, 0, len(s.Notifications))
		for _, n := range s.Notifications {
			notifications = append(notifications, notificationDTO{Channel: n.Channel, Target: n.Target})
		}
		steps = append(steps, stepDTO{
			Sequence:                 s.Sequence,
			Name:                     s.Name,
			Action:                   string(s.Action),
			Required:                 s.Required,
			Skippable:                s.Skippable,
			EstimatedDurationMinutes: s.EstimatedDurationMinutes,
			MaxDurationMinutes:       s.MaxDurationMinutes,
			Conditions:               conditions,
			Notifications:            notifications,
		})
	}
	stepsJS, err := json.Marshal(steps)
	if err != nil {
		return TemplateDTO{}, err
	}

	rules := make([]ruleDTO, 0, len(aggregate.Rules()))
	for _, rule := range aggregate.Rules() {
		actions := make([]actionDTO, 0, len(rule.Actions))
		for _, a := range rule.Actions {
			actions = append(actions, actionDTO{Kind: string(a.Kind), Channel: a.Channel, Target: a.Target})
		}
		rules = append(rules, ruleDTO{
			Name:             rule.Name,
			Condition:        string(rule.Condition),
			ThresholdMinutes: rule.ThresholdMinutes,
			StepSequences:    rule.StepSequences,
			Actions:          actions,
			IsActive:         rule.IsActive,
		})
	}
	rulesJS, err := json.Marshal(rules)
	if err != nil {
		return TemplateDTO{}, err
	}

	cargoTypes := make(pq.StringArray, 0, len(aggregate.CargoTypes()))
	for _, ct := range aggregate.CargoTypes() {
		cargoTypes = append(cargoTypes, ct.String())
	}

	return TemplateDTO{
		ID:          aggregate.ID().Bytes(),
		Name:        aggregate.Name(),
		Description: aggregate.Description(),
		Version:     aggregate.Version(),
		Steps:       stepsJS,
		Rules:       rulesJS,
		CargoTypes:  cargoTypes,
		CustomerIDs: pq.StringArray(aggregate.CustomerIDs()),
		IsDefault:   aggregate.IsDefault(),
		IsActive:    aggregate.IsActive(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database row back to a template aggregate.
func toDomain(dto TemplateDTO) (*workflow.Template, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var stepDocs []stepDTO
	if err = json.Unmarshal(dto.Steps, &stepDocs); err != nil {
		return nil, err
	}
	steps := make([]workflow.Step, 0, len(stepDocs))
	for _, doc := range stepDocs {
		conditions := make([]workflow.TransitionCondition, 0, len(doc.Conditions))
		for _, c := range doc.Conditions {
			conditions = append(conditions, workflow.TransitionCondition{
				Kind:  workflow.ConditionKind(c.Kind),
				Value: c.Value,
			})
		}
		notifications := make([]workflow.NotificationDecl, 0, len(doc.Notifications))
		for _, n := range doc.Notifications {
			notifications = append(notifications, workflow.NotificationDecl{Channel: n.Channel, Target: n.Target})
		}
		steps = append(steps, workflow.Step{
			Sequence:                 doc.Sequence,
			Name:                     doc.Name,
			Action:                   workflow.StepAction(doc.Action),
			Required:                 doc.Required,
			Skippable:                doc.Skippable,
			EstimatedDurationMinutes: doc.EstimatedDurationMinutes,
			MaxDurationMinutes:       doc.MaxDurationMinutes,
			Conditions:               conditions,
			Notifications:            notifications,
		})
	}

	var ruleDocs []ruleDTO
	if len(dto.Rules) > 0 {
		if err = json.Unmarshal(dto.Rules, &ruleDocs); err != nil {
			return nil, err
		}
	}
	rules := make([]workflow.EscalationRule, 0, len(ruleDocs))
	for _, doc := range ruleDocs {
		actions := make([]workflow.EscalationAction, 0, len(doc.Actions))
		for _, a := range doc.Actions {
			actions = append(actions, workflow.EscalationAction{
				Kind:    workflow.EscalationActionKind(a.Kind),
				Channel: a.Channel,
				Target:  a.Target,
			})
		}
		rules = append(rules, workflow.EscalationRule{
			Name:             doc.Name,
			Condition:        workflow.EscalationCondition(doc.Condition),
			ThresholdMinutes: doc.ThresholdMinutes,
			StepSequences:    doc.StepSequences,
			Actions:          actions,
			IsActive:         doc.IsActive,
		})
	}

	cargoTypes := make([]order.CargoType, 0, len(dto.CargoTypes))
	for _, raw := range dto.CargoTypes {
		ct, ctErr := order.ParseCargoType(raw)
		if ctErr != nil {
			return nil, ctErr
		}
		cargoTypes = append(cargoTypes, ct)
	}

	return workflow.RestoreTemplate(workflow.RestoreTemplateParams{
		ID:          id,
		Name:        dto.Name,
		Description: dto.Description,
		Version:     dto.Version,
		Steps:       steps,
		Rules:       rules,
		CargoTypes:  cargoTypes,
		CustomerIDs: []string(dto.CustomerIDs),
		IsDefault:   dto.IsDefault,
		IsActive:    dto.IsActive,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}), nil
}
