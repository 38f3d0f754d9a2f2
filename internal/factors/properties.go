package factors

// MetalProperties describes a metal's physical and lifecycle characteristics.
// The catalog backs the metals API endpoint and seeds the store; estimation
// itself only consults MeltingPointC indirectly through Tables.
type MetalProperties struct {
	// Metal is the catalog key.
	Metal Metal `json:"metal_type"`
	// DensityGPerCm3 in grams per cubic centimeter.
	DensityGPerCm3 float64 `json:"density"`
	// MeltingPointC in degrees Celsius.
	MeltingPointC float64 `json:"melting_point"`
	// RecyclingRate is the observed industry recycling rate (0-1). Distinct
	// from the estimator's recycling potential, which models recoverability.
	RecyclingRate float64 `json:"recycling_rate"`
	// Recyclability is the technical recyclability rating (0-1).
	Recyclability float64 `json:"recyclability"`
	// TypicalLifespanYears is the expected service life.
	TypicalLifespanYears int `json:"typical_lifespan"`
	// ThermalConductivity in W/(m*K).
	ThermalConductivity float64 `json:"thermal_conductivity"`
	// ElectricalConductivity in MS/m.
	ElectricalConductivity float64 `json:"electrical_conductivity"`
	// CorrosionResistance is a qualitative rating.
	CorrosionResistance string `json:"corrosion_resistance"`
	// StrengthToWeight is a qualitative rating.
	StrengthToWeight string `json:"strength_to_weight"`
	// CommonForms lists frequent alloys or compounds.
	CommonForms []string `json:"common_forms"`
}

// metalCatalog is the shipped metal-properties catalog.
//
//nolint:gochecknoglobals // Package-level lookup table, read-only after init.
var metalCatalog = map[Metal]MetalProperties{
	MetalAluminum: {
		Metal:                  MetalAluminum,
		DensityGPerCm3:         2.70,
		MeltingPointC:          660.3,
		RecyclingRate:          0.75,
		Recyclability:          0.95,
		TypicalLifespanYears:   30,
		ThermalConductivity:    237,
		ElectricalConductivity: 37.7,
		CorrosionResistance:    "good",
		StrengthToWeight:       "high",
		CommonForms:            []string{"6061", "7075", "2024", "5052"},
	},
	MetalCopper: {
		Metal:                  MetalCopper,
		DensityGPerCm3:         8.96,
		MeltingPointC:          1084.6,
		RecyclingRate:          0.85,
		Recyclability:          0.98,
		TypicalLifespanYears:   50,
		ThermalConductivity:    401,
		ElectricalConductivity: 59.6,
		CorrosionResistance:    "excellent",
		StrengthToWeight:       "medium",
		CommonForms:            []string{"brass", "bronze", "beryllium_copper"},
	},
	MetalSteel: {
		Metal:                  MetalSteel,
		DensityGPerCm3:         7.85,
		MeltingPointC:          1370,
		RecyclingRate:          0.88,
		Recyclability:          0.99,
		TypicalLifespanYears:   75,
		ThermalConductivity:    50,
		ElectricalConductivity: 10,
		CorrosionResistance:    "variable",
		StrengthToWeight:       "very_high",
		CommonForms:            []string{"carbon_steel", "stainless_steel", "alloy_steel"},
	},
	MetalLithium: {
		Metal:                  MetalLithium,
		DensityGPerCm3:         0.534,
		MeltingPointC:          180.5,
		RecyclingRate:          0.05,
		Recyclability:          0.80,
		TypicalLifespanYears:   10,
		ThermalConductivity:    84.8,
		ElectricalConductivity: 10.8,
		CorrosionResistance:    "poor",
		StrengthToWeight:       "low",
		CommonForms:            []string{"LiCoO2", "LiFePO4", "Li2CO3"},
	},
	MetalZinc: {
		Metal:                  MetalZinc,
		DensityGPerCm3:         7.14,
		MeltingPointC:          419.5,
		RecyclingRate:          0.70,
		Recyclability:          0.95,
		TypicalLifespanYears:   40,
		ThermalConductivity:    116,
		ElectricalConductivity: 16.6,
		CorrosionResistance:    "good",
		StrengthToWeight:       "medium",
		CommonForms:            []string{"brass", "zinc_die_cast"},
	},
	MetalNickel: {
		Metal:                  MetalNickel,
		DensityGPerCm3:         8.91,
		MeltingPointC:          1455,
		RecyclingRate:          0.68,
		Recyclability:          0.92,
		TypicalLifespanYears:   60,
		ThermalConductivity:    90.9,
		ElectricalConductivity: 14.3,
		CorrosionResistance:    "excellent",
		StrengthToWeight:       "high",
		CommonForms:            []string{"inconel", "monel", "hastelloy"},
	},
}

// Catalog returns the metal-properties catalog in SupportedMetals order.
func Catalog() []MetalProperties {
	metals := SupportedMetals()
	out := make([]MetalProperties, 0, len(metals))
	for _, m := range metals {
		out = append(out, metalCatalog[m])
	}
	return out
}

// Properties returns the catalog row for a metal. The second return is false
// when the metal has no catalog entry.
func Properties(m Metal) (MetalProperties, bool) {
	p, ok := metalCatalog[m]
	return p, ok
}
