package services_test

import (
	"testing"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goodRow() services.RawRow {
	return services.RawRow{
		"customer_id":       "CUST-001",
		"customer_name":     "Acme Logistics",
		"cargo_description": "Palletized electronics",
		"cargo_type":        "general",
		"priority":          "alta",
		"weight_kg":         "1200",
		"quantity":          "10",
		"origin_name":       "Madrid DC",
		"origin_lat":        "40.4168",
		"origin_lon":        "-3.7038",
		"destination_name":  "Barcelona hub",
		"destination_lat":   "41.3874",
		"destination_lon":   "2.1686",
		"start_date":        "2026-03-10",
		"end_date":          "2026-03-12",
	}
}

func TestImportValidator_ValidateHeaders(t *testing.T) {
	validator := services.NewImportValidator()

	t.Run("should accept a complete header row", func(t *testing.T) {
		report := validator.ValidateHeaders([]string{
			"customer_id", "cargo_description", "origin_name",
			"destination_name", "start_date", "end_date", "priority",
		})

		assert.True(t, report.IsValid())
		assert.Empty(t, report.Unknown)
	})

	t.Run("should report missing required columns", func(t *testing.T) {
		report := validator.ValidateHeaders([]string{"customer_id", "origin_name"})

		assert.False(t, report.IsValid())
		assert.Contains(t, report.MissingRequired, "cargo_description")
		assert.Contains(t, report.MissingRequired, "end_date")
	})

	t.Run("should tolerate unknown columns but report them", func(t *testing.T) {
		report := validator.ValidateHeaders([]string{
			"customer_id", "cargo_description", "origin_name",
			"destination_name", "start_date", "end_date", "driver_phone",
		})

		assert.True(t, report.IsValid())
		assert.Equal(t, []string{"driver_phone"}, report.Unknown)
	})

	t.Run("should normalize header case and whitespace", func(t *testing.T) {
		report := validator.ValidateHeaders([]string{
			" Customer_ID ", "CARGO_DESCRIPTION", "origin_name",
			"destination_name", "start_date", "end_date",
		})

		assert.True(t, report.IsValid())
	})
}

func TestImportValidator_ValidateRows(t *testing.T) {
	validator := services.NewImportValidator()

	t.Run("should classify a clean row as valid", func(t *testing.T) {
		rows := validator.ValidateRows([]services.RawRow{goodRow()})

		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, services.RowStatusValid, row.Status)
		assert.Empty(t, row.Errors)
		assert.Empty(t, row.Warnings)
		assert.Equal(t, order.PriorityHigh, row.Parsed.Priority)
		assert.Equal(t, order.CargoTypeGeneral, row.Parsed.CargoType)
		require.NotNil(t, row.Parsed.OriginPoint)
		assert.InDelta(t, 40.4168, row.Parsed.OriginPoint.Latitude(), 1e-9)
	})

	t.Run("should mark missing customer id as invalid", func(t *testing.T) {
		raw := goodRow()
		delete(raw, "customer_id")

		rows := validator.ValidateRows([]services.RawRow{raw})

		row := rows[0]
		assert.Equal(t, services.RowStatusInvalid, row.Status)
		assert.Contains(t, row.Errors, "customer_id is required")
	})

	t.Run("should warn and default on unknown cargo type", func(t *testing.T) {
		raw := goodRow()
		raw["cargo_type"] = "desconocido"

		rows := validator.ValidateRows([]services.RawRow{raw})

		row := rows[0]
		assert.Equal(t, services.RowStatusWarning, row.Status)
		assert.Empty(t, row.Errors)
		require.Len(t, row.Warnings, 1)
		assert.Contains(t, row.Warnings[0], "desconocido")
		assert.Equal(t, order.CargoTypeGeneral, row.Parsed.CargoType)
	})

	t.Run("should reject unknown priority as error", func(t *testing.T) {
		raw := goodRow()
		raw["priority"] = "critical"

		rows := validator.ValidateRows([]services.RawRow{raw})

		assert.Equal(t, services.RowStatusInvalid, rows[0].Status)
	})

	t.Run("should accept spanish priority synonyms", func(t *testing.T) {
		raw := goodRow()
		raw["priority"] = "URGENTE"

		rows := validator.ValidateRows([]services.RawRow{raw})

		assert.Equal(t, services.RowStatusValid, rows[0].Status)
		assert.Equal(t, order.PriorityUrgent, rows[0].Parsed.Priority)
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		raw := goodRow()
		raw["origin_lat"] = "95.0"

		rows := validator.ValidateRows([]services.RawRow{raw})

		row := rows[0]
		assert.Equal(t, services.RowStatusInvalid, row.Status)
		require.Len(t, row.Errors, 1)
		assert.Contains(t, row.Errors[0], "origin coordinates out of range")
	})

	t.Run("should reject incomplete coordinate pairs", func(t *testing.T) {
		raw := goodRow()
		delete(raw, "destination_lon")

		rows := validator.ValidateRows([]services.RawRow{raw})

		assert.Equal(t, services.RowStatusInvalid, rows[0].Status)
	})

	t.Run("should substitute defaults for bad weight and quantity", func(t *testing.T) {
		raw := goodRow()
		raw["weight_kg"] = "-50"
		raw["quantity"] = "lots"

		rows := validator.ValidateRows([]services.RawRow{raw})

		row := rows[0]
		assert.Equal(t, services.RowStatusWarning, row.Status)
		assert.Len(t, row.Warnings, 2)
		assert.InDelta(t, services.DefaultWeightKg, row.Parsed.WeightKg, 1e-9)
		assert.Equal(t, services.DefaultQuantity, row.Parsed.Quantity)
	})

	t.Run("should apply defaults silently when numerics are absent", func(t *testing.T) {
		raw := goodRow()
		delete(raw, "weight_kg")
		delete(raw, "quantity")

		rows := validator.ValidateRows([]services.RawRow{raw})

		row := rows[0]
		assert.Equal(t, services.RowStatusValid, row.Status)
		assert.InDelta(t, services.DefaultWeightKg, row.Parsed.WeightKg, 1e-9)
		assert.Equal(t, services.DefaultQuantity, row.Parsed.Quantity)
	})

	t.Run("should reject unparseable and inverted dates", func(t *testing.T) {
		raw := goodRow()
		raw["start_date"] = "next tuesday"

		rows := validator.ValidateRows([]services.RawRow{raw})
		assert.Equal(t, services.RowStatusInvalid, rows[0].Status)

		raw = goodRow()
		raw["start_date"] = "2026-03-15"
		raw["end_date"] = "2026-03-10"

		rows = validator.ValidateRows([]services.RawRow{raw})
		row := rows[0]
		assert.Equal(t, services.RowStatusInvalid, row.Status)
		assert.Contains(t, row.Errors, "start date is after end date")
	})

	t.Run("should accept several date layouts", func(t *testing.T) {
		for _, value := range []string{
			"2026-03-10", "2026-03-10T08:00:00Z", "2026-03-10 08:00", "10/03/2026",
		} {
			raw := goodRow()
			raw["start_date"] = value

			rows := validator.ValidateRows([]services.RawRow{raw})
			assert.Equal(t, services.RowStatusValid, rows[0].Status, value)
		}
	})

	t.Run("should preserve row order and classify independently", func(t *testing.T) {
		bad := goodRow()
		delete(bad, "customer_id")
		warned := goodRow()
		warned["cargo_type"] = "desconocido"

		rows := validator.ValidateRows([]services.RawRow{goodRow(), bad, warned})

		require.Len(t, rows, 3)
		assert.Equal(t, 0, rows[0].Index)
		assert.Equal(t, 1, rows[1].Index)
		assert.Equal(t, 2, rows[2].Index)
		assert.Equal(t, services.RowStatusValid, rows[0].Status)
		assert.Equal(t, services.RowStatusInvalid, rows[1].Status)
		assert.Equal(t, services.RowStatusWarning, rows[2].Status)
	})
}
