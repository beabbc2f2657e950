package workflow

import (
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/errs"
	"transtrack/internal/pkg/guard"
)

// Template is the aggregate root of the workflow registry: a reusable,
// versioned definition of the stages an order should pass through, with
// timing expectations and escalation rules. Templates are shared and
// referenced by id from orders; order-side operations never mutate them.
//
// At most one template is the default at a time; the registry enforces
// that invariant when a default is activated.
type Template struct {
	id          kernel.UUID
	name        string
	description string
	version     int

	steps []Step
	rules []EscalationRule

	// Applicability filters. An empty filter matches everything; non-empty
	// filters require membership. Both must match for selection.
	cargoTypes  []order.CargoType
	customerIDs []string

	isDefault bool
	isActive  bool

	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewTemplate creates an active, non-default template. Steps are
// renumbered so sequences run 1..N.
func NewTemplate(id kernel.UUID, name, description string, steps []Step,
	rules []EscalationRule, cargoTypes []order.CargoType, customerIDs []string) (*Template, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if len(steps) == 0 {
		return nil, errs.NewValueIsRequiredError("steps")
	}
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	for _, ct := range cargoTypes {
		if err := ct.Validate(); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	t := &Template{
		id:          id,
		name:        name,
		description: description,
		version:     1,
		steps:       steps,
		rules:       rules,
		cargoTypes:  cargoTypes,
		customerIDs: customerIDs,
		isActive:    true,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}
	t.resequence()
	return t, nil
}

func (t *Template) ID() kernel.UUID               { return t.id }
func (t *Template) Name() string                  { return t.name }
func (t *Template) Description() string           { return t.description }
func (t *Template) Version() int                  { return t.version }
func (t *Template) Steps() []Step                 { return t.steps }
func (t *Template) Rules() []EscalationRule       { return t.rules }
func (t *Template) CargoTypes() []order.CargoType { return t.cargoTypes }
func (t *Template) CustomerIDs() []string         { return t.customerIDs }
func (t *Template) IsDefault() bool               { return t.isDefault }
func (t *Template) IsActive() bool                { return t.isActive }
func (t *Template) CreatedAt() time.Time          { return t.createdAt }
func (t *Template) UpdatedAt() time.Time          { return t.updatedAt }

// ActiveRules returns the escalation rules currently switched on.
func (t *Template) ActiveRules() []EscalationRule {
	active := make([]EscalationRule, 0, len(t.rules))
	for _, r := range t.rules {
		if r.IsActive {
			active = append(active, r)
		}
	}
	return active
}

// Validate checks the template was created through a constructor.
func (t *Template) Validate() error {
	return t.guard.Validate(errs.NewValueIsRequiredError("Template must be created via NewTemplate"))
}

// AppliesTo reports whether the template's filters match the given cargo
// type and customer. Empty filters match everything.
func (t *Template) AppliesTo(cargoType order.CargoType, customerID string) bool {
	if len(t.cargoTypes) > 0 {
		found := false
		for _, ct := range t.cargoTypes {
			if ct == cargoType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(t.customerIDs) > 0 {
		found := false
		for _, id := range t.customerIDs {
			if id == customerID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Update replaces the template definition and bumps the version. Orders
// already bound to the template keep running against the shared instance;
// the version records that the definition moved under them.
func (t *Template) Update(name, description string, steps []Step,
	rules []EscalationRule, cargoTypes []order.CargoType, customerIDs []string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	if len(steps) == 0 {
		return errs.NewValueIsRequiredError("steps")
	}
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	t.name = name
	t.description = description
	t.steps = steps
	t.rules = rules
	t.cargoTypes = cargoTypes
	t.customerIDs = customerIDs
	t.version++
	t.resequence()
	t.touch()
	return nil
}

// Activate switches the template on.
func (t *Template) Activate() {
	t.isActive = true
	t.touch()
}

// Deactivate switches the template off. The default template cannot be
// deactivated; demote it first.
func (t *Template) Deactivate() error {
	if t.isDefault {
		return errs.NewInvalidOperationError("deactivate template", "template is the default")
	}
	t.isActive = false
	t.touch()
	return nil
}

// MarkDefault promotes the template to the single fallback used when no
// filter matches. The caller is responsible for demoting the previous
// default in the same transaction. Inactive templates cannot be default.
func (t *Template) MarkDefault() error {
	if !t.isActive {
		return errs.NewInvalidOperationError("mark template default", "template is inactive")
	}
	t.isDefault = true
	t.touch()
	return nil
}

// UnmarkDefault demotes the template from default.
func (t *Template) UnmarkDefault() {
	t.isDefault = false
	t.touch()
}

// CanDelete reports whether the template may be removed: never the
// default, and active templates must be deactivated first.
func (t *Template) CanDelete() error {
	if t.isDefault {
		return errs.NewInvalidOperationError("delete template", "template is the default")
	}
	if t.isActive {
		return errs.NewInvalidOperationError("delete template", "template is active")
	}
	return nil
}

// Duplicate creates an inactive copy under a new id and name, starting
// again at version 1.
func (t *Template) Duplicate(newID kernel.UUID, newName string) (*Template, error) {
	if err := newID.Validate(); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	now := time.Now().UTC()
	copySteps := make([]Step, len(t.steps))
	copy(copySteps, t.steps)
	copyRules := make([]EscalationRule, len(t.rules))
	copy(copyRules, t.rules)
	copyCargo := make([]order.CargoType, len(t.cargoTypes))
	copy(copyCargo, t.cargoTypes)
	copyCustomers := make([]string, len(t.customerIDs))
	copy(copyCustomers, t.customerIDs)

	return &Template{
		id:          newID,
		name:        newName,
		description: t.description,
		version:     1,
		steps:       copySteps,
		rules:       copyRules,
		cargoTypes:  copyCargo,
		customerIDs: copyCustomers,
		isActive:    false,
		createdAt:   now,
		updatedAt:   now,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (t *Template) resequence() {
	for i := range t.steps {
		t.steps[i].Sequence = i + 1
	}
}

func (t *Template) touch() {
	t.updatedAt = time.Now().UTC()
}

// RestoreTemplateParams carries every persisted field of a template.
type RestoreTemplateParams struct {
	ID          kernel.UUID
	Name        string
	Description string
	Version     int
	Steps       []Step
	Rules       []EscalationRule
	CargoTypes  []order.CargoType
	CustomerIDs []string
	IsDefault   bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RestoreTemplate reconstructs a template from storage. Intended for
// repositories only.
func RestoreTemplate(params RestoreTemplateParams) *Template {
	return &Template{
		id:          params.ID,
		name:        params.Name,
		description: params.Description,
		version:     params.Version,
		steps:       params.Steps,
		rules:       params.Rules,
		cargoTypes:  params.CargoTypes,
		customerIDs: params.CustomerIDs,
		isDefault:   params.IsDefault,
		isActive:    params.IsActive,
		createdAt:   params.CreatedAt,
		updatedAt:   params.UpdatedAt,
		guard:       guard.NewConstructorGuard(),
	}
}
