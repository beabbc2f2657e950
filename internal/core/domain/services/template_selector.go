package services

import (
	"errors"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/model/workflow"
)

// ErrNoTemplateMatches is returned when no active template matches the
// order attributes and no default template exists to fall back on.
var ErrNoTemplateMatches = errors.New("no workflow template matches")

// TemplateSelector is a domain service that picks the workflow template
// governing a new order.
//
// Selection policy: the first active non-default template whose
// applicability filters match the order's cargo type and customer wins;
// when none matches, the unique default template is used. Candidate order
// is the caller's (repositories return templates in creation order).
type TemplateSelector struct{}

// NewTemplateSelector creates a new TemplateSelector instance.
func NewTemplateSelector() TemplateSelector {
	return TemplateSelector{}
}

// Select resolves the template for the given cargo type and customer.
func (s TemplateSelector) Select(candidates []*workflow.Template,
	cargoType order.CargoType, customerID string) (*workflow.Template, error) {
	var fallback *workflow.Template

	for _, tpl := range candidates {
		if !tpl.IsActive() {
			continue
		}
		if tpl.IsDefault() {
			fallback = tpl
			continue
		}
		if tpl.AppliesTo(cargoType, customerID) {
			return tpl, nil
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrNoTemplateMatches
}
