package factors

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Factor-pack loading errors, comparable with errors.Is().
var (
	// ErrPackSchema indicates a missing, malformed, or unsupported
	// schema_version in a factor pack.
	ErrPackSchema = constError("unsupported factor pack schema")

	// ErrPackInvalid indicates a factor pack that parsed but carries values
	// outside their allowed ranges.
	ErrPackInvalid = constError("invalid factor pack")
)

// packSchemaConstraint accepts any 1.x pack. A major bump signals an
// incompatible layout and is rejected.
const packSchemaConstraint = "^1.0.0"

// packFile is the YAML layout of a factor pack. All sections are optional;
// present entries overlay the baseline.
type packFile struct {
	SchemaVersion     string                            `yaml:"schema_version"`
	Metals            map[Metal]MetalFactors            `yaml:"metals"`
	EnergySources     map[EnergySource]float64          `yaml:"energy_sources"`
	RecyclingEOL      map[EndOfLife]float64             `yaml:"recycling_end_of_life"`
	CircularityEOL    map[EndOfLife]float64             `yaml:"circularity_end_of_life"`
	RouteDefaults     map[Metal]map[Route]RouteDefaults `yaml:"route_defaults"`
	MeltingPoints     map[Metal]float64                 `yaml:"melting_points"`
	Benchmarks        *Benchmarks                       `yaml:"benchmarks"`
	TransportEmission *float64                          `yaml:"transport_emission_factor"`
}

// LoadPack reads a YAML factor pack and overlays it onto the baseline
// Tables. The pack's schema_version must satisfy the 1.x constraint; entries
// the pack does not mention keep their baseline values.
func LoadPack(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading factor pack: %w", err)
	}
	return ParsePack(data)
}

// ParsePack parses factor-pack YAML and overlays it onto the baseline.
func ParsePack(data []byte) (Tables, error) {
	var pack packFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return Tables{}, fmt.Errorf("parsing factor pack: %w", err)
	}

	if err := checkPackSchema(pack.SchemaVersion); err != nil {
		return Tables{}, err
	}

	tables := Default()
	for metal, mf := range pack.Metals {
		if err := validateMetalFactors(metal, mf); err != nil {
			return Tables{}, err
		}
		tables.Metals[metal] = mf
	}
	for source, mult := range pack.EnergySources {
		if mult < 0 {
			return Tables{}, fmt.Errorf("%w: energy source %q multiplier is negative", ErrPackInvalid, source)
		}
		tables.EnergyMultipliers[source] = mult
	}
	for scenario, f := range pack.RecyclingEOL {
		tables.RecyclingEOL[scenario] = f
	}
	for scenario, f := range pack.CircularityEOL {
		tables.CircularityEOL[scenario] = f
	}
	for metal, routes := range pack.RouteDefaults {
		if _, ok := tables.RouteDefaults[metal]; !ok {
			tables.RouteDefaults[metal] = make(map[Route]RouteDefaults, len(routes))
		}
		for route, d := range routes {
			tables.RouteDefaults[metal][route] = d
		}
	}
	for metal, mp := range pack.MeltingPoints {
		tables.MeltingPoints[metal] = mp
	}
	if pack.Benchmarks != nil {
		if err := validateBenchmarks(*pack.Benchmarks); err != nil {
			return Tables{}, err
		}
		tables.Benchmarks = *pack.Benchmarks
	}
	if pack.TransportEmission != nil {
		if *pack.TransportEmission < 0 {
			return Tables{}, fmt.Errorf("%w: transport emission factor is negative", ErrPackInvalid)
		}
		tables.TransportEmissionFactor = *pack.TransportEmission
	}

	return tables, nil
}

func checkPackSchema(version string) error {
	if version == "" {
		return fmt.Errorf("%w: schema_version is required", ErrPackSchema)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q is not valid semver: %v", ErrPackSchema, version, err)
	}
	constraint, err := semver.NewConstraint(packSchemaConstraint)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrPackSchema, version, packSchemaConstraint)
	}
	return nil
}

func validateMetalFactors(metal Metal, mf MetalFactors) error {
	for name, pair := range map[string]IntensityPair{
		"carbon": mf.Carbon, "energy": mf.Energy, "water": mf.Water,
	} {
		if pair.Primary < 0 || pair.Recycled < 0 {
			return fmt.Errorf("%w: metal %q %s intensity is negative", ErrPackInvalid, metal, name)
		}
	}
	if mf.RecyclingPotential < 0 || mf.RecyclingPotential > 1 {
		return fmt.Errorf("%w: metal %q recycling potential outside [0,1]", ErrPackInvalid, metal)
	}
	if mf.MaterialEfficiency < 0 || mf.MaterialEfficiency > 1 {
		return fmt.Errorf("%w: metal %q material efficiency outside [0,1]", ErrPackInvalid, metal)
	}
	return nil
}

func validateBenchmarks(b Benchmarks) error {
	if b.CarbonCeiling <= 0 || b.EnergyIntensityCeiling <= 0 || b.WaterCeiling <= 0 || b.WasteCeiling <= 0 {
		return fmt.Errorf("%w: benchmark ceilings must be positive", ErrPackInvalid)
	}
	return nil
}
