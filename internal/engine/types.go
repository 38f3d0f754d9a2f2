// Package engine implements the pathway estimation pipeline: input
// normalization, physical-metric estimation over injected factor tables,
// composite scoring, and cross-pathway comparison.
//
// The pipeline is total. Soft data-quality problems (unknown enum values,
// out-of-range numbers, missing optional fields) never surface as errors;
// the normalizer resolves them with metal- and route-aware defaults so the
// estimator and scorer only ever see complete, bounded records.
// Explicit errors are reserved for boundary conditions the caller must hear
// about, such as comparing fewer than two pathways.
package engine

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/metalpath/metalpath/internal/factors"
)

// AssessmentInput is a fully normalized estimation request. Instances are
// produced by Normalize; constructing one by hand is reserved for tests.
// Every enum field holds a defined member and every numeric field is inside
// its documented range.
type AssessmentInput struct {
	// Metal selects the factor-table row.
	Metal factors.Metal `json:"metal_type"`
	// Route selects direct-recycled lookup versus interpolation.
	Route factors.Route `json:"production_route"`
	// QuantityKg is the production quantity in kilograms, always > 0.
	QuantityKg float64 `json:"quantity"`
	// RecycledContent is the recycled material fraction in [0,1], used as
	// the interpolation weight between primary and recycled intensities.
	RecycledContent float64 `json:"recycled_content"`
	// EnergyConsumption overrides derived energy when the caller supplied
	// one, in kWh. Nil means the estimator derives it.
	EnergyConsumption *float64 `json:"energy_consumption,omitempty"`
	// ElectricitySource selects the carbon multiplier.
	ElectricitySource factors.EnergySource `json:"electricity_source"`
	// TransportKm is the transport distance in kilometers.
	TransportKm float64 `json:"transport_distance"`
	// WasteKg overrides derived waste when positive; zero means derive.
	WasteKg float64 `json:"waste_generation"`
	// EndOfLife selects the recycling-potential and circularity multipliers.
	EndOfLife factors.EndOfLife `json:"end_of_life_scenario"`
	// ProcessTemperatureC adjusts material efficiency when provided.
	ProcessTemperatureC *float64 `json:"process_temperature,omitempty"`
	// ProcessEfficiency is the process yield in [0.1, 1.0].
	ProcessEfficiency float64 `json:"process_efficiency"`

	// Energy sub-components in their native units, all >= 0.
	ElectricityKWh float64 `json:"electricity_kwh"`
	FossilFuelMJ   float64 `json:"fossil_fuel_mj"`
	NaturalGasMJ   float64 `json:"natural_gas_mj"`
	RenewableKWh   float64 `json:"renewable_kwh"`

	// Completeness is the percentage of recognized fields present in the
	// raw input. Diagnostic only; estimation never reads it.
	Completeness float64 `json:"completeness"`
}

// PhysicalMetrics holds the directly estimated quantities before composite
// scoring. Values are unrounded; rounding happens once when the final
// AssessmentResult is assembled.
type PhysicalMetrics struct {
	// CarbonKg is the carbon footprint in kg CO2e.
	CarbonKg float64 `json:"carbon_footprint"`
	// EnergyKWh is the total energy consumption in kWh.
	EnergyKWh float64 `json:"energy_consumption"`
	// EnergyIntensity is EnergyKWh per kg of product.
	EnergyIntensity float64 `json:"energy_intensity"`
	// WaterL is the water footprint in liters.
	WaterL float64 `json:"water_footprint"`
	// WasteKg is the waste generation in kg, derived when not supplied.
	WasteKg float64 `json:"waste_generation"`
	// RecyclingPotential is the end-of-life-adjusted fraction in [0,1].
	RecyclingPotential float64 `json:"recycling_potential"`
	// MaterialEfficiency is the route- and temperature-adjusted yield in
	// [0.1, 1.0].
	MaterialEfficiency float64 `json:"material_efficiency"`
}

// CompositeIndices holds the two derived indices.
type CompositeIndices struct {
	// Circularity is the weighted circularity index in [0,1].
	Circularity float64 `json:"circularity_index"`
	// Sustainability is the weighted score in [0,10], one decimal.
	Sustainability float64 `json:"sustainability_score"`
}

// ImpactBreakdown derives illustrative impact-category proxies from carbon
// footprint and material efficiency. The categories are fixed ratios, not
// independently modeled pathways.
type ImpactBreakdown struct {
	// ClimateChange equals the carbon footprint in kg CO2e.
	ClimateChange float64 `json:"climate_change"`
	// OzoneDepletion in kg CFC-11e.
	OzoneDepletion float64 `json:"ozone_depletion"`
	// Acidification in kg SO2e.
	Acidification float64 `json:"acidification"`
	// Eutrophication in kg PO4e.
	Eutrophication float64 `json:"eutrophication"`
	// ResourceDepletion is the lost-material fraction, 1 - efficiency.
	ResourceDepletion float64 `json:"resource_depletion"`
}

// AssessmentResult is the complete output for one pathway. It is immutable
// once returned; callers own storage and rendering.
type AssessmentResult struct {
	// Input is the normalized record the metrics were computed from.
	Input AssessmentInput `json:"input"`

	// CarbonKg is the carbon footprint in kg CO2e, rounded to 2 decimals.
	CarbonKg float64 `json:"carbon_footprint"`
	// EnergyKWh is total energy consumption in kWh.
	EnergyKWh float64 `json:"energy_consumption"`
	// EnergyIntensity is kWh per kg, rounded to 2 decimals.
	EnergyIntensity float64 `json:"energy_intensity"`
	// WaterL is the water footprint in liters, rounded to 2 decimals.
	WaterL float64 `json:"water_footprint"`
	// WasteKg is waste generation in kg.
	WasteKg float64 `json:"waste_generation"`
	// RecyclingPotential in [0,1], rounded to 3 decimals.
	RecyclingPotential float64 `json:"recycling_potential"`
	// MaterialEfficiency in [0.1,1], rounded to 3 decimals.
	MaterialEfficiency float64 `json:"material_efficiency"`
	// Circularity in [0,1], rounded to 3 decimals.
	Circularity float64 `json:"circularity_index"`
	// Sustainability in [0,10], rounded to 1 decimal.
	Sustainability float64 `json:"sustainability_score"`
	// Impact is the fixed-ratio impact breakdown, computed from the
	// unrounded carbon footprint.
	Impact ImpactBreakdown `json:"environmental_impact"`
}

// PathwayResult pairs an estimation result with its comparison identity.
type PathwayResult struct {
	// ID is the 1-based pathway position in the compare request.
	ID int `json:"pathway_id"`
	// Name is the caller-supplied label, or "Pathway N" when absent.
	Name string `json:"pathway_name"`
	// Result is the completed estimation for this pathway.
	Result AssessmentResult `json:"result"`
}

// BestEntry identifies the winning pathway for one comparison dimension.
type BestEntry struct {
	// PathwayID is the winner's 1-based id.
	PathwayID int `json:"pathway_id"`
	// Name is the winner's label.
	Name string `json:"pathway_name"`
	// Value is the winning metric value.
	Value float64 `json:"value"`
}

// Insights is the comparison output: the per-pathway results plus the
// best-performer designations.
type Insights struct {
	// Pathways holds each pathway's completed estimation in request order.
	Pathways []PathwayResult `json:"pathways"`
	// BestCarbon is the pathway with the lowest carbon footprint.
	BestCarbon BestEntry `json:"lowest_carbon"`
	// BestSustainability is the pathway with the highest sustainability.
	BestSustainability BestEntry `json:"highest_sustainability"`
}

// FindingCode categorizes a soft data-quality finding.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type FindingCode int

const (
	// FindingLowCompleteness flags raw input missing too many fields.
	FindingLowCompleteness FindingCode = iota
	// FindingUnusualEnergyMix flags an electricity/fossil ratio above the
	// plausible range.
	FindingUnusualEnergyMix
	// FindingInconsistentRecycling flags a recycled route with low recycled
	// content.
	FindingInconsistentRecycling
)

// String returns the machine-readable label for a FindingCode.
func (c FindingCode) String() string {
	switch c {
	case FindingLowCompleteness:
		return "low_completeness"
	case FindingUnusualEnergyMix:
		return "unusual_energy_mix"
	case FindingInconsistentRecycling:
		return "inconsistent_recycling"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// MarshalJSON implements json.Marshaler to output FindingCode as string.
func (c FindingCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON implements json.Unmarshaler to parse FindingCode from string.
func (c *FindingCode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("parsing finding code: %w", err)
	}
	switch str {
	case "low_completeness":
		*c = FindingLowCompleteness
	case "unusual_energy_mix":
		*c = FindingUnusualEnergyMix
	case "inconsistent_recycling":
		*c = FindingInconsistentRecycling
	default:
		return fmt.Errorf("unknown finding code: %q", str)
	}
	return nil
}

// Finding is one soft data-quality observation about a raw input. Findings
// never block estimation; they surface in reports.
type Finding struct {
	// Code categorizes the finding.
	Code FindingCode `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
}

// roundTo rounds v to the given number of decimal places, matching the
// half-away-from-zero behavior the result fields are documented with.
func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
