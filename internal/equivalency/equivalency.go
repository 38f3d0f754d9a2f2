package equivalency

import (
	"fmt"
	"math"
)

// Equivalencies converts a carbon footprint in kg CO2e into the full set of
// comparisons, in priority order: miles driven, smartphones charged,
// tree-years, home-days.
//
// Negative input returns ErrNegativeValue. Values below
// MinEquivalencyThresholdKg return an empty set without error, since
// sub-kilogram footprints produce comparisons too small to mean anything.
func Equivalencies(kg float64) ([]Equivalency, error) {
	if math.IsInf(kg, 0) || math.IsNaN(kg) {
		return nil, ErrCalculationOverflow
	}
	if kg < 0 {
		return nil, ErrNegativeValue
	}
	if kg < MinEquivalencyThresholdKg {
		return nil, nil
	}

	miles := kg / EPAMilesDrivenFactor
	phones := kg / EPASmartphoneChargeFactor
	treeYears := kg / EPATreeYearFactor
	homeDays := kg / EPAHomeDayFactor

	if math.IsInf(miles, 0) || math.IsInf(phones, 0) {
		return nil, ErrCalculationOverflow
	}

	return []Equivalency{
		{
			Kind:           MilesDriven,
			Value:          miles,
			FormattedValue: formatEquivalencyValue(miles),
			Label:          "miles driven",
		},
		{
			Kind:           SmartphonesCharged,
			Value:          phones,
			FormattedValue: formatEquivalencyValue(phones),
			Label:          "smartphones charged",
		},
		{
			Kind:           TreeYears,
			Value:          treeYears,
			FormattedValue: formatEquivalencyValue(treeYears),
			Label:          "tree-years of carbon sequestration",
		},
		{
			Kind:           HomeDays,
			Value:          homeDays,
			FormattedValue: formatEquivalencyValue(homeDays),
			Label:          "days of home electricity use",
		},
	}, nil
}

// Calculate normalizes a carbon input to kilograms and computes the full
// equivalency output, including the prose and compact display strings.
//
// Normalization or calculation errors return an empty output alongside the
// error. A value below the display threshold returns an empty output with
// InputKg set and no error.
func Calculate(input CarbonInput) (Output, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return Output{IsEmpty: true}, err
	}

	results, err := Equivalencies(kg)
	if err != nil {
		return Output{IsEmpty: true}, err
	}
	if len(results) == 0 {
		return Output{InputKg: kg, IsEmpty: true}, nil
	}

	milesFormatted := results[0].FormattedValue
	phonesFormatted := results[1].FormattedValue

	return Output{
		InputKg: kg,
		Results: results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
			milesFormatted, phonesFormatted),
		CompactText: fmt.Sprintf("(≈ %s mi, %s phones)", milesFormatted, phonesFormatted),
		IsEmpty:     false,
	}, nil
}

// formatEquivalencyValue formats an equivalency value for display: compact
// large-number notation past the million threshold, otherwise the nearest
// integer with thousand separators.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
