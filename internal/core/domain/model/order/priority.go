package order

import (
	"strings"

	"transtrack/internal/pkg/errs"
)

// Priority ranks how urgently an order must be handled.
type Priority int

const (
	PriorityUnknown Priority = iota
	PriorityLow
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		PriorityLow:     "low",
		PriorityNormal:  "normal",
		PriorityHigh:    "high",
		PriorityUrgent:  "urgent",
	}
}

// Validate checks that the Priority holds one of the defined values.
func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return nil
	case PriorityUnknown:
	}
	return errs.NewValueIsInvalidError("priority")
}

// String returns the wire name of the priority. Safe on any value.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// ParsePriority resolves a raw priority label, accepting both the canonical
// English names and the Spanish synonyms that appear in customer import
// files. Matching is case-insensitive and ignores surrounding whitespace.
func ParsePriority(raw string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "baja":
		return PriorityLow, nil
	case "normal":
		return PriorityNormal, nil
	case "high", "alta":
		return PriorityHigh, nil
	case "urgent", "urgente":
		return PriorityUrgent, nil
	}
	return PriorityUnknown, errs.NewValueIsInvalidError("priority")
}
