package engine

import (
	"math"

	"github.com/metalpath/metalpath/internal/factors"
)

// Material-efficiency adjustments.
const (
	// recycledEfficiencyBonus scales base efficiency up on recycled routes.
	recycledEfficiencyBonus = 1.1
	// overheatingRatio is the melting-point multiple above which the
	// overheating penalty applies.
	overheatingRatio = 1.5
	// overheatingPenalty scales efficiency down for excessive temperature.
	overheatingPenalty = 0.9
	// underheatingRatio is the melting-point multiple below which the
	// underheating penalty applies.
	underheatingRatio = 0.8
	// underheatingPenalty scales efficiency down for insufficient temperature.
	underheatingPenalty = 0.85
)

// Waste derivation coefficients: waste falls linearly as efficiency rises,
// from 10% of quantity at zero efficiency down to 2% at full efficiency.
const (
	wasteBaseShare       = 0.10
	wasteEfficiencyShare = 0.08
)

// Estimate computes the physical metrics for a normalized input. It is a
// pure function of the input and the engine's factor tables; with the
// default disabled noise model the same input always produces identical
// output.
func (e *Engine) Estimate(input AssessmentInput) PhysicalMetrics {
	mf := e.tables.FactorsFor(input.Metal)

	metrics := PhysicalMetrics{
		CarbonKg:           e.estimateCarbon(input, mf),
		EnergyKWh:          e.estimateEnergy(input, mf),
		WaterL:             e.estimateWater(input, mf),
		RecyclingPotential: mf.RecyclingPotential * e.tables.RecyclingEOLFactor(input.EndOfLife),
		MaterialEfficiency: e.estimateMaterialEfficiency(input, mf),
	}

	// Quantity is guaranteed positive by the normalizer; the guard keeps a
	// hand-built input from dividing by zero.
	if input.QuantityKg > 0 {
		metrics.EnergyIntensity = metrics.EnergyKWh / input.QuantityKg
	}

	metrics.WasteKg = input.WasteKg
	if metrics.WasteKg == 0 {
		metrics.WasteKg = input.QuantityKg * (wasteBaseShare - metrics.MaterialEfficiency*wasteEfficiencyShare)
	}
	metrics.WasteKg = math.Max(0, metrics.WasteKg)

	return metrics
}

// intensityFor selects the effective intensity for one metric: recycled
// routes use the recycled end directly, everything else interpolates between
// the primary and recycled ends with recycled content as the weight.
func intensityFor(input AssessmentInput, pair factors.IntensityPair) float64 {
	if input.Route == factors.RouteRecycled {
		return pair.Recycled
	}
	return pair.Interpolate(input.RecycledContent)
}

// estimateCarbon computes production emissions scaled by the electricity
// source plus transport emissions, then applies the carbon noise factor to
// the combined figure.
func (e *Engine) estimateCarbon(input AssessmentInput, mf factors.MetalFactors) float64 {
	intensity := intensityFor(input, mf.Carbon)
	sourceFactor := e.tables.EnergyMultiplier(input.ElectricitySource)
	transport := input.QuantityKg * input.TransportKm * e.tables.TransportEmissionFactor

	carbon := input.QuantityKg*intensity*sourceFactor + transport
	carbon *= e.noise.Factor(carbonNoiseStdDev, carbonNoiseFloor)
	return math.Max(0, carbon)
}

// estimateEnergy returns the caller-supplied consumption unchanged when one
// was provided, otherwise derives it from the interpolated energy intensity.
func (e *Engine) estimateEnergy(input AssessmentInput, mf factors.MetalFactors) float64 {
	if input.EnergyConsumption != nil {
		return *input.EnergyConsumption
	}

	energy := input.QuantityKg * intensityFor(input, mf.Energy)
	energy *= e.noise.Factor(energyNoiseStdDev, energyNoiseFloor)
	return math.Max(0, energy)
}

func (e *Engine) estimateWater(input AssessmentInput, mf factors.MetalFactors) float64 {
	water := input.QuantityKg * intensityFor(input, mf.Water)
	water *= e.noise.Factor(waterNoiseStdDev, waterNoiseFloor)
	return math.Max(0, water)
}

// estimateMaterialEfficiency starts from the metal's base efficiency, applies
// the recycled-route bonus, then penalizes process temperatures far from the
// metal's melting point. The result is clamped to [0.1, 1.0].
func (e *Engine) estimateMaterialEfficiency(input AssessmentInput, mf factors.MetalFactors) float64 {
	efficiency := mf.MaterialEfficiency

	if input.Route == factors.RouteRecycled {
		efficiency *= recycledEfficiencyBonus
	}

	if input.ProcessTemperatureC != nil {
		meltingPoint := e.tables.MeltingPointFor(input.Metal)
		switch {
		case *input.ProcessTemperatureC > meltingPoint*overheatingRatio:
			efficiency *= overheatingPenalty
		case *input.ProcessTemperatureC < meltingPoint*underheatingRatio:
			efficiency *= underheatingPenalty
		}
	}

	return clamp(efficiency, minProcessEfficiency, maxProcessEfficiency)
}
