// Package factors holds the static coefficient tables that drive pathway
// estimation: per-metal intensity pairs, energy-source multipliers,
// end-of-life multiplier tables, metal/route normalization defaults, and the
// benchmark ceilings used by sustainability scoring.
//
// Tables is an immutable value assembled once at process start (Default, or
// Default overlaid by a YAML factor pack) and injected into the engine. There
// is no package-level mutable state; tests override tables with plain struct
// literals.
package factors

import "strings"

// Metal identifies a supported metal. The set is closed: unrecognized names
// normalize to MetalAluminum upstream, so lookups never miss in practice.
type Metal string

// Supported metals.
const (
	MetalAluminum Metal = "aluminum"
	MetalCopper   Metal = "copper"
	MetalSteel    Metal = "steel"
	MetalLithium  Metal = "lithium"
	MetalZinc     Metal = "zinc"
	MetalNickel   Metal = "nickel"
)

// DefaultMetal is the fallback for unrecognized or absent metal types.
const DefaultMetal = MetalAluminum

// SupportedMetals returns the closed metal set in catalog order.
func SupportedMetals() []Metal {
	return []Metal{MetalAluminum, MetalCopper, MetalSteel, MetalLithium, MetalZinc, MetalNickel}
}

// ParseMetal resolves a raw metal name (case-insensitive, surrounding
// whitespace ignored). The second return reports whether the name matched a
// supported metal; callers that want silent defaulting use DefaultMetal on a
// false return.
func ParseMetal(raw string) (Metal, bool) {
	m := Metal(strings.ToLower(strings.TrimSpace(raw)))
	switch m {
	case MetalAluminum, MetalCopper, MetalSteel, MetalLithium, MetalZinc, MetalNickel:
		return m, true
	default:
		return DefaultMetal, false
	}
}

// Route identifies a production route.
type Route string

// Production routes.
const (
	RoutePrimary  Route = "primary"
	RouteRecycled Route = "recycled"
	RouteMixed    Route = "mixed"
)

// DefaultRoute is the fallback for unrecognized or absent routes.
const DefaultRoute = RoutePrimary

// SupportedRoutes returns the closed route set.
func SupportedRoutes() []Route {
	return []Route{RoutePrimary, RouteRecycled, RouteMixed}
}

// ParseRoute resolves a raw route name, defaulting to RoutePrimary.
func ParseRoute(raw string) (Route, bool) {
	r := Route(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoutePrimary, RouteRecycled, RouteMixed:
		return r, true
	default:
		return DefaultRoute, false
	}
}

// EnergySource identifies the electricity source powering production.
type EnergySource string

// Electricity sources.
const (
	EnergyCoal          EnergySource = "coal"
	EnergyNaturalGas    EnergySource = "natural_gas"
	EnergyGridMix       EnergySource = "grid_mix"
	EnergyRenewable     EnergySource = "renewable"
	EnergyNuclear       EnergySource = "nuclear"
	EnergyHydroelectric EnergySource = "hydroelectric"
)

// DefaultEnergySource is the fallback for unrecognized or absent sources.
const DefaultEnergySource = EnergyGridMix

// SupportedEnergySources returns the supported electricity sources.
func SupportedEnergySources() []EnergySource {
	return []EnergySource{
		EnergyCoal, EnergyNaturalGas, EnergyGridMix,
		EnergyRenewable, EnergyNuclear, EnergyHydroelectric,
	}
}

// ParseEnergySource resolves a raw source name, defaulting to grid mix.
func ParseEnergySource(raw string) (EnergySource, bool) {
	s := EnergySource(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case EnergyCoal, EnergyNaturalGas, EnergyGridMix, EnergyRenewable, EnergyNuclear, EnergyHydroelectric:
		return s, true
	default:
		return DefaultEnergySource, false
	}
}

// EndOfLife identifies the assumed disposal pathway after service life.
type EndOfLife string

// End-of-life scenarios.
const (
	EOLRecycling    EndOfLife = "recycling"
	EOLLandfill     EndOfLife = "landfill"
	EOLIncineration EndOfLife = "incineration"
	EOLReuse        EndOfLife = "reuse"
)

// DefaultEndOfLife is the fallback for unrecognized or absent scenarios.
const DefaultEndOfLife = EOLRecycling

// SupportedEndOfLife returns the supported end-of-life scenarios.
func SupportedEndOfLife() []EndOfLife {
	return []EndOfLife{EOLRecycling, EOLLandfill, EOLIncineration, EOLReuse}
}

// ParseEndOfLife resolves a raw scenario name, defaulting to recycling.
func ParseEndOfLife(raw string) (EndOfLife, bool) {
	e := EndOfLife(strings.ToLower(strings.TrimSpace(raw)))
	switch e {
	case EOLRecycling, EOLLandfill, EOLIncineration, EOLReuse:
		return e, true
	default:
		return DefaultEndOfLife, false
	}
}

// IntensityPair holds a metal's primary and recycled intensity for one
// metric. Route interpolation blends between the two ends.
type IntensityPair struct {
	// Primary is the intensity for production from raw ore.
	Primary float64 `yaml:"primary" json:"primary"`
	// Recycled is the intensity for production from reclaimed scrap.
	Recycled float64 `yaml:"recycled" json:"recycled"`
}

// Interpolate blends the pair linearly: Primary at ratio 0, Recycled at 1.
func (p IntensityPair) Interpolate(ratio float64) float64 {
	return p.Primary*(1-ratio) + p.Recycled*ratio
}

// MetalFactors holds all per-metal coefficients used by estimation.
type MetalFactors struct {
	// Carbon is the carbon intensity pair in kg CO2e per kg.
	Carbon IntensityPair `yaml:"carbon" json:"carbon"`
	// Energy is the energy intensity pair in kWh per kg.
	Energy IntensityPair `yaml:"energy" json:"energy"`
	// Water is the water intensity pair in liters per kg.
	Water IntensityPair `yaml:"water" json:"water"`
	// RecyclingPotential is the base fraction (0-1) recoverable at end of life.
	RecyclingPotential float64 `yaml:"recycling_potential" json:"recycling_potential"`
	// MaterialEfficiency is the base process yield fraction (0-1).
	MaterialEfficiency float64 `yaml:"material_efficiency" json:"material_efficiency"`
}

// RouteDefaults carries the metal/route-specific values the normalizer uses
// to estimate energy figures and refine generic defaults.
type RouteDefaults struct {
	// EnergyMultiplier scales quantity into estimated energy sub-components.
	EnergyMultiplier float64 `yaml:"energy_multiplier" json:"energy_multiplier"`
	// TypicalEfficiency replaces the generic process-efficiency default.
	TypicalEfficiency float64 `yaml:"typical_efficiency" json:"typical_efficiency"`
	// TransportFactor scales the generic transport-distance default.
	TransportFactor float64 `yaml:"transport_factor" json:"transport_factor"`
}

// Benchmarks holds the normalization ceilings for sustainability scoring.
// They are calibration constants, not physical limits, and may be retuned
// through a factor pack.
type Benchmarks struct {
	// CarbonCeiling in kg CO2e.
	CarbonCeiling float64 `yaml:"carbon" json:"carbon"`
	// EnergyIntensityCeiling in kWh per kg.
	EnergyIntensityCeiling float64 `yaml:"energy_intensity" json:"energy_intensity"`
	// WaterCeiling in liters.
	WaterCeiling float64 `yaml:"water" json:"water"`
	// WasteCeiling in kg.
	WasteCeiling float64 `yaml:"waste" json:"waste"`
}

// Tables is the complete immutable coefficient set injected into the engine.
type Tables struct {
	// Metals maps each supported metal to its factor row.
	Metals map[Metal]MetalFactors
	// EnergyMultipliers maps electricity sources to carbon multipliers.
	EnergyMultipliers map[EnergySource]float64
	// RecyclingEOL multiplies base recycling potential per end-of-life
	// scenario. Distinct from CircularityEOL; the two tables carry
	// deliberately different incineration values.
	RecyclingEOL map[EndOfLife]float64
	// CircularityEOL feeds the circularity index end-of-life term.
	CircularityEOL map[EndOfLife]float64
	// RouteDefaults maps metal then route to normalization defaults.
	RouteDefaults map[Metal]map[Route]RouteDefaults
	// MeltingPoints maps metals to melting points in degrees Celsius.
	MeltingPoints map[Metal]float64
	// Benchmarks holds sustainability normalization ceilings.
	Benchmarks Benchmarks
	// TransportEmissionFactor is kg CO2e emitted per kg transported per km.
	TransportEmissionFactor float64
}

// unknownEOLFactor guards table lookups against scenarios a factor pack may
// have removed. Normalization keeps unknown scenarios out of the hot path.
const unknownEOLFactor = 0.5

// fallbackMeltingPoint is used when a metal has no melting-point entry.
const fallbackMeltingPoint = 1000.0

// FactorsFor returns the metal's factor row, falling back to DefaultMetal
// when the table has no entry.
func (t Tables) FactorsFor(m Metal) MetalFactors {
	if f, ok := t.Metals[m]; ok {
		return f
	}
	return t.Metals[DefaultMetal]
}

// EnergyMultiplier returns the carbon multiplier for an electricity source,
// falling back to the grid-mix multiplier.
func (t Tables) EnergyMultiplier(s EnergySource) float64 {
	if m, ok := t.EnergyMultipliers[s]; ok {
		return m
	}
	return t.EnergyMultipliers[DefaultEnergySource]
}

// RecyclingEOLFactor returns the recycling-potential multiplier for an
// end-of-life scenario.
func (t Tables) RecyclingEOLFactor(e EndOfLife) float64 {
	if f, ok := t.RecyclingEOL[e]; ok {
		return f
	}
	return unknownEOLFactor
}

// CircularityEOLFactor returns the circularity end-of-life term for a
// scenario.
func (t Tables) CircularityEOLFactor(e EndOfLife) float64 {
	if f, ok := t.CircularityEOL[e]; ok {
		return f
	}
	return unknownEOLFactor
}

// DefaultsFor returns the normalization defaults for a metal and route.
// Metals without an entry use aluminum's rows; routes without an entry
// (including mixed) use the primary row.
func (t Tables) DefaultsFor(m Metal, r Route) RouteDefaults {
	routes, ok := t.RouteDefaults[m]
	if !ok {
		routes = t.RouteDefaults[DefaultMetal]
	}
	if d, ok := routes[r]; ok {
		return d
	}
	return routes[DefaultRoute]
}

// MeltingPointFor returns the metal's melting point in degrees Celsius.
func (t Tables) MeltingPointFor(m Metal) float64 {
	if mp, ok := t.MeltingPoints[m]; ok {
		return mp
	}
	return fallbackMeltingPoint
}
