package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"transtrack/internal/core/domain/model/kernel"
	"transtrack/internal/core/domain/model/order"
)

// Default substitutions for rows that omit or botch numeric cargo fields.
// Substitution downgrades the problem to a warning instead of blocking
// the row.
const (
	DefaultWeightKg = 1000.0
	DefaultQuantity = 1
)

// Import column names. The required subset must appear in the header row;
// known optional columns enrich the order, anything else is reported as
// unknown but tolerated.
const (
	ColCustomerID       = "customer_id"
	ColCustomerName     = "customer_name"
	ColCargoDescription = "cargo_description"
	ColCargoType        = "cargo_type"
	ColPriority         = "priority"
	ColWeightKg         = "weight_kg"
	ColQuantity         = "quantity"
	ColDeclaredValue    = "declared_value"
	ColOriginName       = "origin_name"
	ColOriginAddress    = "origin_address"
	ColOriginLat        = "origin_lat"
	ColOriginLon        = "origin_lon"
	ColDestName         = "destination_name"
	ColDestAddress      = "destination_address"
	ColDestLat          = "destination_lat"
	ColDestLon          = "destination_lon"
	ColStartDate        = "start_date"
	ColEndDate          = "end_date"
	ColExternalRef      = "external_ref"
	ColNotes            = "notes"
)

func requiredColumns() []string {
	return []string{
		ColCustomerID, ColCargoDescription, ColOriginName, ColDestName,
		ColStartDate, ColEndDate,
	}
}

func knownColumns() map[string]bool {
	return map[string]bool{
		ColCustomerID: true, ColCustomerName: true,
		ColCargoDescription: true, ColCargoType: true, ColPriority: true,
		ColWeightKg: true, ColQuantity: true, ColDeclaredValue: true,
		ColOriginName: true, ColOriginAddress: true, ColOriginLat: true, ColOriginLon: true,
		ColDestName: true, ColDestAddress: true, ColDestLat: true, ColDestLon: true,
		ColStartDate: true, ColEndDate: true,
		ColExternalRef: true, ColNotes: true,
	}
}

// RawRow is one imported tabular row keyed by column header.
type RawRow map[string]string

// RowStatus classifies a validated row.
type RowStatus string

const (
	RowStatusValid   RowStatus = "valid"
	RowStatusWarning RowStatus = "warning"
	RowStatusInvalid RowStatus = "invalid"
)

// HeaderReport lists required columns missing from the header row and
// columns the importer does not recognize. Unknown columns are informative
// only; missing required columns also surface as per-row errors.
type HeaderReport struct {
	MissingRequired []string
	Unknown         []string
}

// IsValid reports whether every required column is present.
func (h HeaderReport) IsValid() bool { return len(h.MissingRequired) == 0 }

// ParsedRow holds the typed values extracted from a valid or warning row,
// ready for order creation.
type ParsedRow struct {
	CustomerID       string
	CustomerName     string
	CargoDescription string
	CargoType        order.CargoType
	Priority         order.Priority
	WeightKg         float64
	Quantity         int
	DeclaredValue    float64

	OriginName         string
	OriginAddress      string
	OriginPoint        *kernel.GeoPoint
	DestinationName    string
	DestinationAddress string
	DestinationPoint   *kernel.GeoPoint

	StartDate   time.Time
	EndDate     time.Time
	ExternalRef string
	Notes       string
}

// ValidatedRow pairs a raw row with its classification. Errors are fatal
// for the row, warnings are not. Index preserves the input position for
// traceability.
type ValidatedRow struct {
	Index    int
	Raw      RawRow
	Parsed   ParsedRow
	Errors   []string
	Warnings []string
	Status   RowStatus
}

// ImportValidator is a domain service that validates bulk-imported order
// rows: header shape, required fields, enum membership with localized
// synonyms, coordinate ranges, date sanity and numeric defaults.
//
// Validation is pure; actually creating orders from the surviving rows is
// the import use case's job.
type ImportValidator struct{}

// NewImportValidator creates a new ImportValidator instance.
func NewImportValidator() ImportValidator {
	return ImportValidator{}
}

// ValidateHeaders checks the header row for the required column subset and
// reports unrecognized columns.
func (v ImportValidator) ValidateHeaders(headers []string) HeaderReport {
	present := make(map[string]bool, len(headers))
	var report HeaderReport

	for _, h := range headers {
		name := strings.ToLower(strings.TrimSpace(h))
		present[name] = true
		if !knownColumns()[name] {
			report.Unknown = append(report.Unknown, name)
		}
	}

	for _, required := range requiredColumns() {
		if !present[required] {
			report.MissingRequired = append(report.MissingRequired, required)
		}
	}

	return report
}

// ValidateRows classifies every row, preserving input order. Each result
// is valid (no findings), warning (non-fatal findings, safe defaults
// substituted) or invalid (fatal findings).
func (v ImportValidator) ValidateRows(rows []RawRow) []ValidatedRow {
	results := make([]ValidatedRow, 0, len(rows))
	for i, raw := range rows {
		results = append(results, v.validateRow(i, raw))
	}
	return results
}

func (v ImportValidator) validateRow(index int, raw RawRow) ValidatedRow {
	row := ValidatedRow{Index: index, Raw: raw}
	parsed := ParsedRow{
		Priority:  order.PriorityNormal,
		CargoType: order.CargoTypeGeneral,
		WeightKg:  DefaultWeightKg,
		Quantity:  DefaultQuantity,
	}

	parsed.CustomerID = v.requireField(raw, ColCustomerID, &row)
	parsed.CargoDescription = v.requireField(raw, ColCargoDescription, &row)
	parsed.OriginName = v.requireField(raw, ColOriginName, &row)
	parsed.DestinationName = v.requireField(raw, ColDestName, &row)

	parsed.CustomerName = field(raw, ColCustomerName)
	parsed.OriginAddress = field(raw, ColOriginAddress)
	parsed.DestinationAddress = field(raw, ColDestAddress)
	parsed.ExternalRef = field(raw, ColExternalRef)
	parsed.Notes = field(raw, ColNotes)

	if value := field(raw, ColPriority); value != "" {
		priority, err := order.ParsePriority(value)
		if err != nil {
			row.Errors = append(row.Errors, fmt.Sprintf("unknown priority %q", value))
		} else {
			parsed.Priority = priority
		}
	}

	if value := field(raw, ColCargoType); value != "" {
		cargoType, err := order.ParseCargoType(value)
		if err != nil {
			row.Warnings = append(row.Warnings,
				fmt.Sprintf("unknown cargo type %q, defaulting to %s", value, order.CargoTypeGeneral))
		} else {
			parsed.CargoType = cargoType
		}
	}

	if value := field(raw, ColWeightKg); value != "" {
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil || weight <= 0 {
			row.Warnings = append(row.Warnings,
				fmt.Sprintf("invalid weight %q, defaulting to %v kg", value, DefaultWeightKg))
		} else {
			parsed.WeightKg = weight
		}
	}

	if value := field(raw, ColQuantity); value != "" {
		quantity, err := strconv.Atoi(value)
		if err != nil || quantity <= 0 {
			row.Warnings = append(row.Warnings,
				fmt.Sprintf("invalid quantity %q, defaulting to %d", value, DefaultQuantity))
		} else {
			parsed.Quantity = quantity
		}
	}

	if value := field(raw, ColDeclaredValue); value != "" {
		declared, err := strconv.ParseFloat(value, 64)
		if err != nil || declared < 0 {
			row.Warnings = append(row.Warnings, fmt.Sprintf("invalid declared value %q, ignored", value))
		} else {
			parsed.DeclaredValue = declared
		}
	}

	parsed.OriginPoint = v.parsePoint(raw, ColOriginLat, ColOriginLon, "origin", &row)
	parsed.DestinationPoint = v.parsePoint(raw, ColDestLat, ColDestLon, "destination", &row)

	start := v.parseDate(raw, ColStartDate, &row)
	end := v.parseDate(raw, ColEndDate, &row)
	parsed.StartDate = start
	parsed.EndDate = end
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		row.Errors = append(row.Errors, "start date is after end date")
	}

	row.Parsed = parsed
	row.Status = classify(row)
	return row
}

func (v ImportValidator) requireField(raw RawRow, column string, row *ValidatedRow) string {
	value := field(raw, column)
	if value == "" {
		row.Errors = append(row.Errors, fmt.Sprintf("%s is required", column))
	}
	return value
}

func (v ImportValidator) parsePoint(raw RawRow, latCol, lonCol, side string, row *ValidatedRow) *kernel.GeoPoint {
	latRaw := field(raw, latCol)
	lonRaw := field(raw, lonCol)
	if latRaw == "" && lonRaw == "" {
		return nil
	}
	if latRaw == "" || lonRaw == "" {
		row.Errors = append(row.Errors, fmt.Sprintf("%s coordinates are incomplete", side))
		return nil
	}

	lat, latErr := strconv.ParseFloat(latRaw, 64)
	lon, lonErr := strconv.ParseFloat(lonRaw, 64)
	if latErr != nil || lonErr != nil {
		row.Errors = append(row.Errors, fmt.Sprintf("%s coordinates are not numeric", side))
		return nil
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		row.Errors = append(row.Errors, fmt.Sprintf("%s coordinates out of range: %s", side, err))
		return nil
	}
	return &point
}

// dateLayouts lists accepted date formats, tried in order.
func dateLayouts() []string {
	return []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02/01/2006",
	}
}

func (v ImportValidator) parseDate(raw RawRow, column string, row *ValidatedRow) time.Time {
	value := field(raw, column)
	if value == "" {
		// missing required dates were already reported
		if column != ColStartDate && column != ColEndDate {
			return time.Time{}
		}
		row.Errors = append(row.Errors, fmt.Sprintf("%s is required", column))
		return time.Time{}
	}

	for _, layout := range dateLayouts() {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}

	row.Errors = append(row.Errors, fmt.Sprintf("cannot parse %s %q", column, value))
	return time.Time{}
}

func field(raw RawRow, column string) string {
	return strings.TrimSpace(raw[column])
}

func classify(row ValidatedRow) RowStatus {
	switch {
	case len(row.Errors) > 0:
		return RowStatusInvalid
	case len(row.Warnings) > 0:
		return RowStatusWarning
	}
	return RowStatusValid
}
