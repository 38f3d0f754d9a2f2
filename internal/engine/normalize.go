package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/metalpath/metalpath/internal/factors"
)

// Generic defaults applied before metal/route-specific refinement.
const (
	// defaultQuantityKg replaces absent, non-numeric, or non-positive quantities.
	defaultQuantityKg = 1000.0
	// defaultTransportKm is the generic transport-distance default.
	defaultTransportKm = 100.0
	// defaultRecycledContent assumes virgin material when unspecified.
	defaultRecycledContent = 0.0
	// defaultProcessEfficiency is the generic yield before the metal/route
	// typical value replaces it.
	defaultProcessEfficiency = 0.8
	// defaultElectricityKWh is the generic electricity sub-component default.
	defaultElectricityKWh = 500.0
	// defaultFossilFuelMJ is the generic fossil-fuel sub-component default.
	defaultFossilFuelMJ = 1000.0
)

// Process-efficiency clamp range.
const (
	minProcessEfficiency = 0.1
	maxProcessEfficiency = 1.0
)

// Energy estimation and blending coefficients. Estimated sub-components scale
// off quantity times the route's energy multiplier; a provided figure further
// than blendDeviationRatio of the estimate away from it is averaged with the
// estimate. This smooths obviously miscalibrated inputs rather than rejecting
// them; it is a heuristic, not a validation rule.
const (
	electricityEstimateShare = 0.5
	fossilEstimateShare      = 1.0
	blendDeviationRatio      = 0.5
)

// completenessFieldCount is the fixed list size behind the completeness
// percentage: metal_type, production_route, quantity, energy_data plus the
// optional transport distance, recycled content, and process efficiency.
const completenessFieldCount = 7

// Data-quality thresholds.
const (
	// lowCompletenessPct flags raw inputs missing too many fields.
	lowCompletenessPct = 70.0
	// energyMixRatioMax is the electricity/fossil ratio above which the mix
	// looks implausible.
	energyMixRatioMax = 2.0
	// recycledRouteContentFloor is the recycled-content fraction below which
	// a recycled route is internally inconsistent.
	recycledRouteContentFloor = 0.5
)

// Bounds carries the configurable clamp limits the normalizer applies.
type Bounds struct {
	// MinQuantityKg is the smallest accepted quantity after defaulting.
	MinQuantityKg float64
	// MaxQuantityKg is the largest accepted quantity.
	MaxQuantityKg float64
	// MaxTransportKm caps the transport distance clamp range.
	MaxTransportKm float64
}

// DefaultBounds returns the shipped clamp limits.
func DefaultBounds() Bounds {
	return Bounds{
		MinQuantityKg:  0.001,
		MaxQuantityKg:  1000000,
		MaxTransportKm: 10000,
	}
}

// Normalize converts a raw, partially populated input map into a complete,
// bounded AssessmentInput. It is a total function: unknown enum values fall
// back to their defaults, unparseable or out-of-range numbers clamp to the
// nearest bound, and nothing the caller sends can make it fail.
func (e *Engine) Normalize(raw map[string]any) AssessmentInput {
	metal, _ := factors.ParseMetal(stringField(raw, "metal_type"))
	route, _ := factors.ParseRoute(stringField(raw, "production_route"))
	source, _ := factors.ParseEnergySource(stringField(raw, "electricity_source"))
	eol, _ := factors.ParseEndOfLife(stringField(raw, "end_of_life_scenario"))

	input := AssessmentInput{
		Metal:             metal,
		Route:             route,
		ElectricitySource: source,
		EndOfLife:         eol,
		QuantityKg:        e.normalizeQuantity(raw),
		RecycledContent:   numericField(raw, aliasRecycledContent, defaultRecycledContent, 0, 1),
		TransportKm:       numericField(raw, aliasTransport, defaultTransportKm, 0, e.bounds.MaxTransportKm),
		ProcessEfficiency: numericField(raw, []string{"process_efficiency"}, defaultProcessEfficiency, minProcessEfficiency, maxProcessEfficiency),
		WasteKg:           numericField(raw, []string{"waste_generation"}, 0, 0, math.Inf(1)),
		Completeness:      completeness(raw),
	}

	if v, ok := optionalNumeric(raw, "energy_consumption"); ok && v >= 0 {
		input.EnergyConsumption = &v
	}
	// Zero temperature reads as absent, so no adjustment applies.
	if v, ok := optionalNumeric(raw, "process_temperature"); ok && v != 0 {
		input.ProcessTemperatureC = &v
	}

	energy := energyDataMap(raw)
	input.ElectricityKWh = numericField(energy, []string{"electricity_kwh"}, defaultElectricityKWh, 0, math.Inf(1))
	input.FossilFuelMJ = numericField(energy, []string{"fossil_fuel_mj"}, defaultFossilFuelMJ, 0, math.Inf(1))
	input.NaturalGasMJ = numericField(energy, []string{"natural_gas_mj"}, 0, 0, math.Inf(1))
	input.RenewableKWh = numericField(energy, []string{"renewable_kwh"}, 0, 0, math.Inf(1))

	e.fillRouteDefaults(&input)
	return input
}

// normalizeQuantity parses the quantity, substituting the default for absent,
// non-numeric, or non-positive values, then clamps to the configured range.
func (e *Engine) normalizeQuantity(raw map[string]any) float64 {
	qty := defaultQuantityKg
	if v, ok := optionalNumeric(raw, "quantity"); ok && v > 0 {
		qty = v
	}
	return clamp(qty, e.bounds.MinQuantityKg, e.bounds.MaxQuantityKg)
}

// fillRouteDefaults refines the generically defaulted record with the
// metal/route defaults table: energy figures that deviate wildly from a
// quantity-scaled estimate are blended toward it, and efficiency or transport
// values the caller never provided are replaced with the route's values.
func (e *Engine) fillRouteDefaults(input *AssessmentInput) {
	defaults := e.tables.DefaultsFor(input.Metal, input.Route)

	estimatedElectricity := input.QuantityKg * defaults.EnergyMultiplier * electricityEstimateShare
	estimatedFossil := input.QuantityKg * defaults.EnergyMultiplier * fossilEstimateShare

	if math.Abs(input.ElectricityKWh-estimatedElectricity) > estimatedElectricity*blendDeviationRatio {
		input.ElectricityKWh = (input.ElectricityKWh + estimatedElectricity) / 2
	}
	if math.Abs(input.FossilFuelMJ-estimatedFossil) > estimatedFossil*blendDeviationRatio {
		input.FossilFuelMJ = (input.FossilFuelMJ + estimatedFossil) / 2
	}

	// Equality with the generic default means the caller never set the field.
	if input.ProcessEfficiency == defaultProcessEfficiency {
		input.ProcessEfficiency = defaults.TypicalEfficiency
	}
	if input.TransportKm == defaultTransportKm {
		input.TransportKm *= defaults.TransportFactor
	}
}

// DataQuality inspects a normalized record and reports soft findings. The
// findings never block estimation; reports and API responses surface them so
// callers can improve their inputs.
func DataQuality(input AssessmentInput) []Finding {
	var findings []Finding

	if input.Completeness < lowCompletenessPct {
		findings = append(findings, Finding{
			Code:    FindingLowCompleteness,
			Message: "low data completeness, provide more detailed input for better accuracy",
		})
	}

	if input.FossilFuelMJ > 0 && input.ElectricityKWh/input.FossilFuelMJ > energyMixRatioMax {
		findings = append(findings, Finding{
			Code:    FindingUnusualEnergyMix,
			Message: "high electricity to fossil fuel ratio, verify energy consumption data",
		})
	}

	if input.Route == factors.RouteRecycled && input.RecycledContent < recycledRouteContentFloor {
		findings = append(findings, Finding{
			Code:    FindingInconsistentRecycling,
			Message: "low recycled content for recycled route, increase the recycled content ratio",
		})
	}

	return findings
}

// Recognized alias sets. The canonical names come first; the suffixed forms
// match the field names assessment clients historically sent.
//
//nolint:gochecknoglobals // Package-level lookup tables, read-only after init.
var (
	aliasRecycledContent = []string{"recycled_content", "recycled_content_ratio"}
	aliasTransport       = []string{"transport_distance", "transport_distance_km"}
	energySubFields      = []string{"electricity_kwh", "fossil_fuel_mj", "natural_gas_mj", "renewable_kwh"}
)

// completeness computes the percentage of the fixed field list present and
// non-nil in the raw input, rounded to two decimals.
func completeness(raw map[string]any) float64 {
	present := 0
	for _, aliases := range [][]string{
		{"metal_type"},
		{"production_route"},
		{"quantity"},
		aliasTransport,
		aliasRecycledContent,
		{"process_efficiency"},
	} {
		if anyPresent(raw, aliases) {
			present++
		}
	}
	if energyDataPresent(raw) {
		present++
	}
	return roundTo(float64(present)/completenessFieldCount*100, 2)
}

// energyDataPresent reports whether the raw input carried any energy data,
// either as a nested energy_data map or as flat sub-component fields.
func energyDataPresent(raw map[string]any) bool {
	if v, ok := raw["energy_data"]; ok && v != nil {
		return true
	}
	return anyPresent(raw, energySubFields)
}

// energyDataMap returns the map holding energy sub-components: the nested
// energy_data map when present, otherwise the raw record itself so flat
// fields resolve through the same lookups.
func energyDataMap(raw map[string]any) map[string]any {
	if nested, ok := raw["energy_data"].(map[string]any); ok {
		return nested
	}
	return raw
}

func anyPresent(raw map[string]any, keys []string) bool {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return true
		}
	}
	return false
}

// stringField returns the first present alias coerced to a string, or "".
func stringField(raw map[string]any, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// numericField resolves the first present alias against a (default, min, max)
// triple: absent or unparseable values take the default, out-of-range values
// clamp to the nearest bound.
func numericField(raw map[string]any, aliases []string, def, minVal, maxVal float64) float64 {
	for _, key := range aliases {
		if v, ok := optionalNumeric(raw, key); ok {
			return clamp(v, minVal, maxVal)
		}
	}
	return clamp(def, minVal, maxVal)
}

// optionalNumeric reads a raw value as a float64, accepting the numeric types
// JSON and YAML decoders produce plus numeric strings.
func optionalNumeric(raw map[string]any, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, false
	}
	return coerceFloat(v)
}

func coerceFloat(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	// NaN and infinities cannot be clamped meaningfully; treat as unparseable.
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
