package order

import (
	"strings"

	"transtrack/internal/pkg/errs"
)

// CargoType classifies the goods being transported. The classification
// drives workflow template selection.
type CargoType int

const (
	CargoTypeUnknown CargoType = iota
	CargoTypeGeneral
	CargoTypeRefrigerated
	CargoTypeHazardous
	CargoTypeFragile
	CargoTypeOversized
	CargoTypeLiquid
	CargoTypeBulk
)

func getCargoTypeStrings() map[CargoType]string {
	return map[CargoType]string{
		CargoTypeUnknown:      "unknown",
		CargoTypeGeneral:      "general",
		CargoTypeRefrigerated: "refrigerated",
		CargoTypeHazardous:    "hazardous",
		CargoTypeFragile:      "fragile",
		CargoTypeOversized:    "oversized",
		CargoTypeLiquid:       "liquid",
		CargoTypeBulk:         "bulk",
	}
}

// Validate checks that the CargoType holds one of the defined values.
func (c CargoType) Validate() error {
	switch c {
	case CargoTypeGeneral, CargoTypeRefrigerated, CargoTypeHazardous,
		CargoTypeFragile, CargoTypeOversized, CargoTypeLiquid, CargoTypeBulk:
		return nil
	case CargoTypeUnknown:
	}
	return errs.NewValueIsInvalidError("cargo type")
}

// String returns the wire name of the cargo type. Safe on any value.
func (c CargoType) String() string {
	if str, ok := getCargoTypeStrings()[c]; ok {
		return str
	}
	return "unknown"
}

// ParseCargoType resolves a raw cargo classification, accepting both the
// canonical English names and the Spanish synonyms found in customer
// import files. Matching is case-insensitive and ignores surrounding
// whitespace.
func ParseCargoType(raw string) (CargoType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "general":
		return CargoTypeGeneral, nil
	case "refrigerated", "refrigerada":
		return CargoTypeRefrigerated, nil
	case "hazardous", "peligrosa":
		return CargoTypeHazardous, nil
	case "fragile", "fragil", "frágil":
		return CargoTypeFragile, nil
	case "oversized", "sobredimensionada":
		return CargoTypeOversized, nil
	case "liquid", "liquida", "líquida":
		return CargoTypeLiquid, nil
	case "bulk", "granel":
		return CargoTypeBulk, nil
	}
	return CargoTypeUnknown, errs.NewValueIsInvalidError("cargo type")
}

// Cargo describes the goods carried by an order.
type Cargo struct {
	Description   string
	Type          CargoType
	WeightKg      float64
	Quantity      int
	DeclaredValue float64
}

// Validate checks the cargo description, type and measures.
func (c Cargo) Validate() error {
	if c.Description == "" {
		return errs.NewValueIsRequiredError("cargo description")
	}
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if c.WeightKg <= 0 {
		return errs.NewValueIsInvalidError("cargo weight")
	}
	if c.Quantity <= 0 {
		return errs.NewValueIsInvalidError("cargo quantity")
	}
	if c.DeclaredValue < 0 {
		return errs.NewValueIsInvalidError("cargo declared value")
	}
	return nil
}
