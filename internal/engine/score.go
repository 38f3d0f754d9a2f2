package engine

import "math"

// Circularity index weights. They sum to 1; the index is clamped to [0,1]
// after combination.
const (
	circularityWeightRecycledContent    = 0.30
	circularityWeightRecyclingPotential = 0.30
	circularityWeightEfficiency         = 0.25
	circularityWeightEndOfLife          = 0.15
)

// Sustainability score weights. Normalized metric terms combine with these,
// scale to 0-10, and round to one decimal.
const (
	sustainabilityWeightCarbon      = 0.25
	sustainabilityWeightEnergy      = 0.20
	sustainabilityWeightWater       = 0.15
	sustainabilityWeightWaste       = 0.15
	sustainabilityWeightCircularity = 0.15
	sustainabilityWeightEfficiency  = 0.10
)

// sustainabilityScale converts the 0-1 weighted sum to the 0-10 scale.
const sustainabilityScale = 10.0

// Impact-breakdown proxy ratios. Each category derives from carbon footprint
// by a fixed multiplier; resource depletion is the lost-material fraction.
const (
	ozoneDepletionRatio = 0.00001
	acidificationRatio  = 0.004
	eutrophicationRatio = 0.001
)

// Result rounding precision per field family.
const (
	massMetricDecimals = 2
	ratioDecimals      = 3
	scoreDecimals      = 1
)

// Score combines physical metrics into the composite indices and assembles
// the final immutable result. Pure function with fixed weights; only the
// benchmark ceilings come from the injected tables.
func (e *Engine) Score(input AssessmentInput, metrics PhysicalMetrics) AssessmentResult {
	indices := CompositeIndices{
		Circularity: e.circularityIndex(input, metrics),
	}
	indices.Sustainability = e.sustainabilityScore(metrics, indices.Circularity)

	return assembleResult(input, metrics, indices)
}

// circularityIndex is the weighted sum of recycled content, recycling
// potential, material efficiency, and the circularity end-of-life term,
// clamped to [0,1].
func (e *Engine) circularityIndex(input AssessmentInput, metrics PhysicalMetrics) float64 {
	index := input.RecycledContent*circularityWeightRecycledContent +
		metrics.RecyclingPotential*circularityWeightRecyclingPotential +
		metrics.MaterialEfficiency*circularityWeightEfficiency +
		e.tables.CircularityEOLFactor(input.EndOfLife)*circularityWeightEndOfLife

	return clamp(index, 0, 1)
}

// sustainabilityScore normalizes each raw metric against its benchmark
// ceiling as max(0, 1 - value/ceiling), combines the terms with the fixed
// weights, and scales to 0-10 with one-decimal rounding.
func (e *Engine) sustainabilityScore(metrics PhysicalMetrics, circularity float64) float64 {
	b := e.tables.Benchmarks

	carbonNorm := normalizeAgainstCeiling(metrics.CarbonKg, b.CarbonCeiling)
	energyNorm := normalizeAgainstCeiling(metrics.EnergyIntensity, b.EnergyIntensityCeiling)
	waterNorm := normalizeAgainstCeiling(metrics.WaterL, b.WaterCeiling)
	wasteNorm := normalizeAgainstCeiling(metrics.WasteKg, b.WasteCeiling)

	score := carbonNorm*sustainabilityWeightCarbon +
		energyNorm*sustainabilityWeightEnergy +
		waterNorm*sustainabilityWeightWater +
		wasteNorm*sustainabilityWeightWaste +
		circularity*sustainabilityWeightCircularity +
		metrics.MaterialEfficiency*sustainabilityWeightEfficiency

	return clamp(roundTo(score*sustainabilityScale, scoreDecimals), 0, sustainabilityScale)
}

// normalizeAgainstCeiling maps a raw metric into [0,1]: zero at or above the
// ceiling, one at zero. Ceilings are calibration constants; a non-positive
// ceiling disables the term rather than dividing by zero.
func normalizeAgainstCeiling(value, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	return math.Max(0, 1-value/ceiling)
}

// assembleResult applies the documented per-field rounding and derives the
// impact breakdown from the unrounded metrics.
func assembleResult(input AssessmentInput, metrics PhysicalMetrics, indices CompositeIndices) AssessmentResult {
	return AssessmentResult{
		Input:              input,
		CarbonKg:           roundTo(metrics.CarbonKg, massMetricDecimals),
		EnergyKWh:          metrics.EnergyKWh,
		EnergyIntensity:    roundTo(metrics.EnergyIntensity, massMetricDecimals),
		WaterL:             roundTo(metrics.WaterL, massMetricDecimals),
		WasteKg:            metrics.WasteKg,
		RecyclingPotential: roundTo(metrics.RecyclingPotential, ratioDecimals),
		MaterialEfficiency: roundTo(metrics.MaterialEfficiency, ratioDecimals),
		Circularity:        roundTo(indices.Circularity, ratioDecimals),
		Sustainability:     indices.Sustainability,
		Impact: ImpactBreakdown{
			ClimateChange:     metrics.CarbonKg,
			OzoneDepletion:    metrics.CarbonKg * ozoneDepletionRatio,
			Acidification:     metrics.CarbonKg * acidificationRatio,
			Eutrophication:    metrics.CarbonKg * eutrophicationRatio,
			ResourceDepletion: 1 - metrics.MaterialEfficiency,
		},
	}
}
