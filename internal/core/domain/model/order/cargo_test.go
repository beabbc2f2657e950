package order_test

import (
	"testing"

	"transtrack/internal/core/domain/model/order"
	"transtrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	t.Run("should accept english and spanish synonyms", func(t *testing.T) {
		cases := map[string]order.Priority{
			"low":     order.PriorityLow,
			"baja":    order.PriorityLow,
			"normal":  order.PriorityNormal,
			"high":    order.PriorityHigh,
			"alta":    order.PriorityHigh,
			"urgent":  order.PriorityUrgent,
			"urgente": order.PriorityUrgent,
			"URGENTE": order.PriorityUrgent,
			" Alta ":  order.PriorityHigh,
		}

		for raw, want := range cases {
			got, err := order.ParsePriority(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("should reject unknown label", func(t *testing.T) {
		_, err := order.ParsePriority("critical")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseCargoType(t *testing.T) {
	t.Run("should accept english and spanish synonyms", func(t *testing.T) {
		cases := map[string]order.CargoType{
			"general":           order.CargoTypeGeneral,
			"refrigerada":       order.CargoTypeRefrigerated,
			"refrigerated":      order.CargoTypeRefrigerated,
			"peligrosa":         order.CargoTypeHazardous,
			"fragil":            order.CargoTypeFragile,
			"frágil":            order.CargoTypeFragile,
			"sobredimensionada": order.CargoTypeOversized,
			"liquida":           order.CargoTypeLiquid,
			"granel":            order.CargoTypeBulk,
			"Granel":            order.CargoTypeBulk,
		}

		for raw, want := range cases {
			got, err := order.ParseCargoType(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, want, got, raw)
		}
	})

	t.Run("should reject unknown classification", func(t *testing.T) {
		_, err := order.ParseCargoType("desconocido")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCargo_Validate(t *testing.T) {
	valid := order.Cargo{
		Description: "Steel coils",
		Type:        order.CargoTypeGeneral,
		WeightKg:    8000,
		Quantity:    4,
	}

	t.Run("should accept valid cargo", func(t *testing.T) {
		require.NoError(t, valid.Validate())
	})

	t.Run("should require description", func(t *testing.T) {
		c := valid
		c.Description = ""

		require.ErrorIs(t, c.Validate(), errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive weight and quantity", func(t *testing.T) {
		c := valid
		c.WeightKg = 0
		require.ErrorIs(t, c.Validate(), errs.ErrValueIsInvalid)

		c = valid
		c.Quantity = -1
		require.ErrorIs(t, c.Validate(), errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative declared value", func(t *testing.T) {
		c := valid
		c.DeclaredValue = -5

		require.ErrorIs(t, c.Validate(), errs.ErrValueIsInvalid)
	})
}
