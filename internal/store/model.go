package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/factors"
)

// Assessment is the persistence model for one completed assessment. The full
// input and result travel as JSON documents; the scalar columns exist so
// list views and dashboard aggregates never unmarshal.
type Assessment struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(26)" json:"assessment_id"`
	UserID    string    `gorm:"column:user_id;index:idx_assessment_user,priority:1;not null" json:"user_id"`
	Metal     string    `gorm:"column:metal_type;not null" json:"metal_type"`
	Route     string    `gorm:"column:production_route;not null" json:"production_route"`
	CreatedAt time.Time `gorm:"column:created_at;index:idx_assessment_user,priority:2;not null" json:"created_at"`

	InputJSON  string `gorm:"column:input_json;type:text" json:"-"`
	ResultJSON string `gorm:"column:result_json;type:text" json:"-"`

	CarbonKg       float64 `gorm:"column:carbon_footprint" json:"carbon_footprint"`
	EnergyKWh      float64 `gorm:"column:energy_consumption" json:"energy_consumption"`
	Sustainability float64 `gorm:"column:sustainability_score" json:"sustainability_score"`
	Circularity    float64 `gorm:"column:circularity_index" json:"circularity_index"`
}

// TableName returns the GORM table name.
func (Assessment) TableName() string { return "assessments" }

// NewAssessment builds a persistence record from a completed result. The id
// is a fresh ULID, so records sort lexicographically in creation order.
func NewAssessment(result engine.AssessmentResult, userID string) (*Assessment, error) {
	inputJSON, err := json.Marshal(result.Input)
	if err != nil {
		return nil, fmt.Errorf("encoding assessment input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding assessment result: %w", err)
	}

	return &Assessment{
		ID:             ulid.Make().String(),
		UserID:         userID,
		Metal:          string(result.Input.Metal),
		Route:          string(result.Input.Route),
		CreatedAt:      time.Now().UTC(),
		InputJSON:      string(inputJSON),
		ResultJSON:     string(resultJSON),
		CarbonKg:       result.CarbonKg,
		EnergyKWh:      result.EnergyKWh,
		Sustainability: result.Sustainability,
		Circularity:    result.Circularity,
	}, nil
}

// Result rehydrates the full assessment result from the stored JSON.
func (a *Assessment) Result() (engine.AssessmentResult, error) {
	var result engine.AssessmentResult
	if err := json.Unmarshal([]byte(a.ResultJSON), &result); err != nil {
		return engine.AssessmentResult{}, fmt.Errorf("decoding assessment %s: %w", a.ID, err)
	}
	return result, nil
}

// MetalProperty is the catalog row for one supported metal. Seeded from the
// shipped factors catalog at migration time.
type MetalProperty struct {
	Metal                  string  `gorm:"primaryKey;column:metal_type" json:"metal_type"`
	DensityGPerCm3         float64 `gorm:"column:density" json:"density"`
	MeltingPointC          float64 `gorm:"column:melting_point" json:"melting_point"`
	RecyclingRate          float64 `gorm:"column:recycling_rate" json:"recycling_rate"`
	Recyclability          float64 `gorm:"column:recyclability" json:"recyclability"`
	TypicalLifespanYears   int     `gorm:"column:typical_lifespan" json:"typical_lifespan"`
	ThermalConductivity    float64 `gorm:"column:thermal_conductivity" json:"thermal_conductivity"`
	ElectricalConductivity float64 `gorm:"column:electrical_conductivity" json:"electrical_conductivity"`
	CorrosionResistance    string  `gorm:"column:corrosion_resistance" json:"corrosion_resistance"`
	StrengthToWeight       string  `gorm:"column:strength_to_weight" json:"strength_to_weight"`
	// CommonForms is a JSON-encoded string array.
	CommonForms string `gorm:"column:common_forms" json:"-"`
}

// TableName returns the GORM table name.
func (MetalProperty) TableName() string { return "metal_properties" }

func newMetalProperty(p factors.MetalProperties) (*MetalProperty, error) {
	forms, err := json.Marshal(p.CommonForms)
	if err != nil {
		return nil, fmt.Errorf("encoding common forms for %s: %w", p.Metal, err)
	}
	return &MetalProperty{
		Metal:                  string(p.Metal),
		DensityGPerCm3:         p.DensityGPerCm3,
		MeltingPointC:          p.MeltingPointC,
		RecyclingRate:          p.RecyclingRate,
		Recyclability:          p.Recyclability,
		TypicalLifespanYears:   p.TypicalLifespanYears,
		ThermalConductivity:    p.ThermalConductivity,
		ElectricalConductivity: p.ElectricalConductivity,
		CorrosionResistance:    p.CorrosionResistance,
		StrengthToWeight:       p.StrengthToWeight,
		CommonForms:            string(forms),
	}, nil
}

// Properties converts the catalog row back to its factors representation.
func (m *MetalProperty) Properties() (factors.MetalProperties, error) {
	var forms []string
	if m.CommonForms != "" {
		if err := json.Unmarshal([]byte(m.CommonForms), &forms); err != nil {
			return factors.MetalProperties{}, fmt.Errorf("decoding common forms for %s: %w", m.Metal, err)
		}
	}
	return factors.MetalProperties{
		Metal:                  factors.Metal(m.Metal),
		DensityGPerCm3:         m.DensityGPerCm3,
		MeltingPointC:          m.MeltingPointC,
		RecyclingRate:          m.RecyclingRate,
		Recyclability:          m.Recyclability,
		TypicalLifespanYears:   m.TypicalLifespanYears,
		ThermalConductivity:    m.ThermalConductivity,
		ElectricalConductivity: m.ElectricalConductivity,
		CorrosionResistance:    m.CorrosionResistance,
		StrengthToWeight:       m.StrengthToWeight,
		CommonForms:            forms,
	}, nil
}

// DashboardStats aggregates one user's assessment history.
type DashboardStats struct {
	// TotalAssessments is the user's assessment count.
	TotalAssessments int64 `json:"total_assessments"`
	// AvgCarbonKg is the mean carbon footprint, rounded to 2 decimals.
	AvgCarbonKg float64 `json:"average_carbon_footprint"`
	// AvgSustainability is the mean sustainability score, rounded to 1
	// decimal.
	AvgSustainability float64 `json:"average_sustainability_score"`
	// AvgCircularity is the mean circularity index, rounded to 3 decimals.
	AvgCircularity float64 `json:"average_circularity_index"`
	// Recent holds the most recent assessments, newest first.
	Recent []Assessment `json:"recent_assessments"`
}
