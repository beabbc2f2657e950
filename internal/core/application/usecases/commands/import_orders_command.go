package commands

import (
	"errors"

	"transtrack/internal/core/domain/services"
	"transtrack/internal/pkg/guard"
)

var (
	ErrImportOrdersCommandIsNotConstructed = errors.New(
		"ImportOrdersCommand must be created via NewImportOrdersCommand constructor",
	)
	ErrImportRowsAreRequired = errors.New("at least one row is required")
)

// ImportPolicy controls how classified rows are reported. Invalid rows
// never create orders regardless; SkipInvalid marks them as deliberately
// dropped instead of failed. SkipWarnings additionally holds back rows
// that parsed with defaulted values.
type ImportPolicy struct {
	SkipInvalid  bool
	SkipWarnings bool
}

// ImportOrdersCommand represents a bulk order import: raw tabular rows
// with their column headers and a row-filtering policy.
type ImportOrdersCommand struct { //nolint:recvcheck //using for validation
	headers    []string
	rows       []services.RawRow
	policy     ImportPolicy
	importedBy string

	guard guard.ConstructorGuard
}

// NewImportOrdersCommand creates a bulk import command.
func NewImportOrdersCommand(headers []string, rows []services.RawRow,
	policy ImportPolicy, importedBy string) (ImportOrdersCommand, error) {
	if len(rows) == 0 {
		return ImportOrdersCommand{}, ErrImportRowsAreRequired
	}

	return ImportOrdersCommand{
		headers:    headers,
		rows:       rows,
		policy:     policy,
		importedBy: importedBy,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ImportOrdersCommand) Validate() error {
	return c.guard.Validate(ErrImportOrdersCommandIsNotConstructed)
}

func (c ImportOrdersCommand) Headers() []string       { return c.headers }
func (c ImportOrdersCommand) Rows() []services.RawRow { return c.rows }
func (c ImportOrdersCommand) Policy() ImportPolicy    { return c.policy }
func (c ImportOrdersCommand) ImportedBy() string      { return c.importedBy }
