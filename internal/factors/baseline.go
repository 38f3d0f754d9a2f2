package factors

// Sustainability benchmark ceiling defaults. A pathway at or above a ceiling
// scores zero on that term.
const (
	// DefaultCarbonCeiling is the carbon normalization ceiling in kg CO2e.
	DefaultCarbonCeiling = 20000.0
	// DefaultEnergyIntensityCeiling is the energy-intensity ceiling in kWh/kg.
	DefaultEnergyIntensityCeiling = 50.0
	// DefaultWaterCeiling is the water normalization ceiling in liters.
	DefaultWaterCeiling = 5000000.0
	// DefaultWasteCeiling is the waste normalization ceiling in kg.
	DefaultWasteCeiling = 200.0
)

// DefaultTransportEmissionFactor is kg CO2e per kg of product per km moved.
const DefaultTransportEmissionFactor = 0.001

// baselineMetals holds the shipped per-metal coefficients. Intensities are
// kg CO2e/kg, kWh/kg, and L/kg for the primary and recycled ends.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineMetals = map[Metal]MetalFactors{
	MetalAluminum: {
		Carbon:             IntensityPair{Primary: 11.5, Recycled: 0.6},
		Energy:             IntensityPair{Primary: 15.0, Recycled: 0.75},
		Water:              IntensityPair{Primary: 1500, Recycled: 150},
		RecyclingPotential: 0.95,
		MaterialEfficiency: 0.85,
	},
	MetalCopper: {
		Carbon:             IntensityPair{Primary: 3.8, Recycled: 0.4},
		Energy:             IntensityPair{Primary: 18.5, Recycled: 2.1},
		Water:              IntensityPair{Primary: 2800, Recycled: 280},
		RecyclingPotential: 0.98,
		MaterialEfficiency: 0.90,
	},
	MetalSteel: {
		Carbon:             IntensityPair{Primary: 2.3, Recycled: 0.5},
		Energy:             IntensityPair{Primary: 20.0, Recycled: 5.5},
		Water:              IntensityPair{Primary: 2000, Recycled: 400},
		RecyclingPotential: 0.99,
		MaterialEfficiency: 0.92,
	},
	MetalLithium: {
		Carbon:             IntensityPair{Primary: 15.2, Recycled: 2.1},
		Energy:             IntensityPair{Primary: 85.0, Recycled: 12.0},
		Water:              IntensityPair{Primary: 2200000, Recycled: 50000},
		RecyclingPotential: 0.80,
		MaterialEfficiency: 0.65,
	},
	MetalZinc: {
		Carbon:             IntensityPair{Primary: 3.2, Recycled: 0.7},
		Energy:             IntensityPair{Primary: 12.5, Recycled: 2.8},
		Water:              IntensityPair{Primary: 1800, Recycled: 360},
		RecyclingPotential: 0.95,
		MaterialEfficiency: 0.88,
	},
	MetalNickel: {
		Carbon:             IntensityPair{Primary: 12.8, Recycled: 2.4},
		Energy:             IntensityPair{Primary: 45.0, Recycled: 8.5},
		Water:              IntensityPair{Primary: 3500, Recycled: 700},
		RecyclingPotential: 0.92,
		MaterialEfficiency: 0.82,
	},
}

// baselineEnergyMultipliers scales production carbon by electricity source.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineEnergyMultipliers = map[EnergySource]float64{
	EnergyCoal:          1.2,
	EnergyNaturalGas:    1.0,
	EnergyGridMix:       0.9,
	EnergyRenewable:     0.1,
	EnergyNuclear:       0.05,
	EnergyHydroelectric: 0.02,
}

// baselineRecyclingEOL multiplies base recycling potential per scenario.
// Incineration is 0.05 here but 0.2 in the circularity table; the two tables
// are intentionally independent.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineRecyclingEOL = map[EndOfLife]float64{
	EOLRecycling:    1.0,
	EOLReuse:        0.95,
	EOLLandfill:     0.1,
	EOLIncineration: 0.05,
}

// baselineCircularityEOL feeds the circularity index end-of-life term.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineCircularityEOL = map[EndOfLife]float64{
	EOLRecycling:    1.0,
	EOLReuse:        0.95,
	EOLLandfill:     0.1,
	EOLIncineration: 0.2,
}

// baselineRouteDefaults holds the metal/route normalization defaults.
// Metals without a row fall back to aluminum; mixed routes use primary.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineRouteDefaults = map[Metal]map[Route]RouteDefaults{
	MetalAluminum: {
		RoutePrimary:  {EnergyMultiplier: 1.5, TypicalEfficiency: 0.75, TransportFactor: 1.2},
		RouteRecycled: {EnergyMultiplier: 0.15, TypicalEfficiency: 0.95, TransportFactor: 0.8},
	},
	MetalCopper: {
		RoutePrimary:  {EnergyMultiplier: 1.2, TypicalEfficiency: 0.80, TransportFactor: 1.0},
		RouteRecycled: {EnergyMultiplier: 0.20, TypicalEfficiency: 0.90, TransportFactor: 0.7},
	},
	MetalSteel: {
		RoutePrimary:  {EnergyMultiplier: 1.0, TypicalEfficiency: 0.85, TransportFactor: 0.9},
		RouteRecycled: {EnergyMultiplier: 0.25, TypicalEfficiency: 0.85, TransportFactor: 0.6},
	},
}

// baselineMeltingPoints in degrees Celsius, used for process-temperature
// efficiency adjustments.
//
//nolint:gochecknoglobals // Package-level lookup table, copied into Tables by Default.
var baselineMeltingPoints = map[Metal]float64{
	MetalAluminum: 660,
	MetalCopper:   1085,
	MetalSteel:    1370,
	MetalLithium:  180,
	MetalZinc:     420,
	MetalNickel:   1455,
}

// Default assembles the shipped baseline Tables. Each call returns fresh map
// values so callers may overlay entries without affecting other holders.
func Default() Tables {
	return Tables{
		Metals:            cloneMap(baselineMetals),
		EnergyMultipliers: cloneMap(baselineEnergyMultipliers),
		RecyclingEOL:      cloneMap(baselineRecyclingEOL),
		CircularityEOL:    cloneMap(baselineCircularityEOL),
		RouteDefaults:     cloneRouteDefaults(baselineRouteDefaults),
		MeltingPoints:     cloneMap(baselineMeltingPoints),
		Benchmarks: Benchmarks{
			CarbonCeiling:          DefaultCarbonCeiling,
			EnergyIntensityCeiling: DefaultEnergyIntensityCeiling,
			WaterCeiling:           DefaultWaterCeiling,
			WasteCeiling:           DefaultWasteCeiling,
		},
		TransportEmissionFactor: DefaultTransportEmissionFactor,
	}
}

func cloneMap[K comparable, V any](src map[K]V) map[K]V {
	dst := make(map[K]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func cloneRouteDefaults(src map[Metal]map[Route]RouteDefaults) map[Metal]map[Route]RouteDefaults {
	dst := make(map[Metal]map[Route]RouteDefaults, len(src))
	for metal, routes := range src {
		dst[metal] = cloneMap(routes)
	}
	return dst
}
