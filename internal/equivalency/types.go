// Package equivalency converts carbon footprints into relatable real-world
// comparisons.
//
// It expresses abstract kg CO2e figures as miles driven, smartphones
// charged, tree-years of sequestration, and home-days of electricity using
// EPA-published conversion factors, formatted for report and CLI display.
package equivalency

import (
	"encoding/json"
	"fmt"
)

// Kind represents a category of carbon equivalency.
//
//nolint:recvcheck // String/MarshalJSON use value receivers, UnmarshalJSON needs a pointer.
type Kind int

const (
	// MilesDriven converts CO2e to miles driven in an average passenger vehicle.
	MilesDriven Kind = iota

	// SmartphonesCharged converts CO2e to smartphone full charges.
	SmartphonesCharged

	// TreeYears converts CO2e to tree-years of carbon sequestration.
	TreeYears

	// HomeDays converts CO2e to days of average US home electricity use.
	HomeDays
)

// String returns the wire name of the Kind.
func (k Kind) String() string {
	switch k {
	case MilesDriven:
		return "miles_driven"
	case SmartphonesCharged:
		return "smartphones_charged"
	case TreeYears:
		return "tree_years"
	case HomeDays:
		return "home_days"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// MarshalJSON encodes the Kind as its wire name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a Kind from its wire name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "miles_driven":
		*k = MilesDriven
	case "smartphones_charged":
		*k = SmartphonesCharged
	case "tree_years":
		*k = TreeYears
	case "home_days":
		*k = HomeDays
	default:
		return fmt.Errorf("unknown equivalency kind: %q", s)
	}
	return nil
}

// CarbonInput represents carbon emission data for equivalency calculation.
type CarbonInput struct {
	// Value is the numeric carbon emission amount.
	Value float64 `json:"value"`

	// Unit is the measurement unit (g, kg, t, gCO2e, kgCO2e, tCO2e, lb, lbCO2e).
	Unit string `json:"unit"`
}

// Equivalency represents a single calculated comparison.
type Equivalency struct {
	// Kind identifies the equivalency category.
	Kind Kind `json:"kind"`

	// Value is the raw calculated equivalency value.
	Value float64 `json:"value"`

	// FormattedValue is the display-ready string with separators/scaling.
	FormattedValue string `json:"formatted_value"`

	// Label is the descriptive phrase (e.g., "miles driven").
	Label string `json:"label"`
}

// Output contains all equivalency results for display.
type Output struct {
	// InputKg is the normalized input value in kilograms CO2e.
	InputKg float64 `json:"input_kg"`

	// Results contains calculated equivalencies in priority order.
	Results []Equivalency `json:"results"`

	// DisplayText is the prose format for CLI/report output.
	// Example: "Equivalent to driving ~781 miles or charging ~18,248 smartphones"
	DisplayText string `json:"display_text"`

	// CompactText is the abbreviated format for constrained outputs.
	// Example: "(≈ 781 mi, 18,248 phones)"
	CompactText string `json:"compact_text"`

	// IsEmpty is true when no equivalencies were calculated.
	IsEmpty bool `json:"is_empty"`
}
