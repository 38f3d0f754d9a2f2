package equivalency

import (
	"math"
	"strings"
)

// getUnitFactor returns the conversion factor to kilograms for the unit,
// matching case-insensitively. Unrecognized units return (0, false).
func getUnitFactor(unit string) (float64, bool) {
	switch strings.ToLower(unit) {
	case "g", "gco2e":
		return GramsToKg, true
	case "kg", "kgco2e":
		return KgToKg, true
	case "t", "tco2e":
		return TonsToKg, true
	case "lb", "lbco2e":
		return PoundsToKg, true
	default:
		return 0, false
	}
}

// NormalizeToKg converts a carbon value in any recognized unit to kilograms.
//
// Recognized units: g, kg, t, lb and their CO2e-suffixed variants,
// case-insensitive. Returns ErrNegativeValue for negative values,
// ErrInvalidUnit for unrecognized units, and ErrCalculationOverflow when the
// input or the converted result is not a finite number.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}

	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := getUnitFactor(unit)
	if !ok {
		return 0, ErrInvalidUnit
	}

	result := value * factor
	if math.IsInf(result, 0) {
		return 0, ErrCalculationOverflow
	}

	return result, nil
}

// IsRecognizedUnit reports whether the unit string is valid for carbon values.
func IsRecognizedUnit(unit string) bool {
	_, ok := getUnitFactor(unit)
	return ok
}
