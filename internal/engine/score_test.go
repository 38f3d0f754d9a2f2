package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metalpath/metalpath/internal/factors"
)

func TestScore_CircularityIndex(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name     string
		input    AssessmentInput
		metrics  PhysicalMetrics
		expected float64
	}{
		{
			name:     "weighted blend of the four components",
			input:    AssessmentInput{RecycledContent: 0.5, EndOfLife: factors.EOLRecycling},
			metrics:  PhysicalMetrics{RecyclingPotential: 0.8, MaterialEfficiency: 0.9},
			expected: 0.765,
		},
		{
			name:     "ideal circular pathway saturates at one",
			input:    AssessmentInput{RecycledContent: 1, EndOfLife: factors.EOLRecycling},
			metrics:  PhysicalMetrics{RecyclingPotential: 1, MaterialEfficiency: 1},
			expected: 1,
		},
		{
			name:     "landfill drags the end-of-life term down",
			input:    AssessmentInput{RecycledContent: 0.5, EndOfLife: factors.EOLLandfill},
			metrics:  PhysicalMetrics{RecyclingPotential: 0.8, MaterialEfficiency: 0.9},
			expected: 0.63,
		},
		{
			name:     "unknown end of life uses the neutral factor",
			input:    AssessmentInput{RecycledContent: 0.5, EndOfLife: factors.EndOfLife("compost")},
			metrics:  PhysicalMetrics{RecyclingPotential: 0.8, MaterialEfficiency: 0.9},
			expected: 0.69,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.Score(tt.input, tt.metrics)
			assert.InDelta(t, tt.expected, result.Circularity, 1e-9)
		})
	}
}

func TestScore_Sustainability(t *testing.T) {
	e := newTestEngine()

	t.Run("metrics at half of every ceiling", func(t *testing.T) {
		result := e.Score(
			AssessmentInput{EndOfLife: factors.EOLRecycling},
			PhysicalMetrics{
				CarbonKg:           10000,
				EnergyIntensity:    25,
				WaterL:             2500000,
				WasteKg:            100,
				RecyclingPotential: 0.95,
				MaterialEfficiency: 0.85,
			},
		)
		// Normalized terms are all 0.5, circularity is 0.6475, efficiency 0.85.
		assert.InDelta(t, 5.6, result.Sustainability, 1e-9)
	})

	t.Run("zero-impact pathway scores ten", func(t *testing.T) {
		result := e.Score(
			AssessmentInput{RecycledContent: 1, EndOfLife: factors.EOLRecycling},
			PhysicalMetrics{RecyclingPotential: 1, MaterialEfficiency: 1},
		)
		assert.InDelta(t, 10, result.Sustainability, 1e-9)
	})

	t.Run("metrics past every ceiling leave only circularity and efficiency", func(t *testing.T) {
		result := e.Score(
			AssessmentInput{EndOfLife: factors.EOLLandfill},
			PhysicalMetrics{
				CarbonKg:           40000,
				EnergyIntensity:    100,
				WaterL:             10000000,
				WasteKg:            400,
				RecyclingPotential: 0,
				MaterialEfficiency: 0.1,
			},
		)
		assert.InDelta(t, 0.2, result.Sustainability, 1e-9)
	})

	t.Run("tighter benchmark ceilings lower the score", func(t *testing.T) {
		metrics := PhysicalMetrics{
			CarbonKg:           5000,
			EnergyIntensity:    10,
			WaterL:             1000000,
			WasteKg:            50,
			RecyclingPotential: 0.9,
			MaterialEfficiency: 0.85,
		}
		input := AssessmentInput{EndOfLife: factors.EOLRecycling}

		tightTables := factors.Default()
		tightTables.Benchmarks = factors.Benchmarks{
			CarbonCeiling:          5000,
			EnergyIntensityCeiling: 10,
			WaterCeiling:           1000000,
			WasteCeiling:           50,
		}
		tight := New(tightTables)

		assert.Less(t,
			tight.Score(input, metrics).Sustainability,
			e.Score(input, metrics).Sustainability,
		)
	})
}

func TestScore_ImpactBreakdown(t *testing.T) {
	e := newTestEngine()

	result := e.Score(
		AssessmentInput{EndOfLife: factors.EOLRecycling},
		PhysicalMetrics{CarbonKg: 1000, MaterialEfficiency: 0.8},
	)

	assert.InDelta(t, 1000, result.Impact.ClimateChange, 1e-9)
	assert.InDelta(t, 0.01, result.Impact.OzoneDepletion, 1e-9)
	assert.InDelta(t, 4, result.Impact.Acidification, 1e-9)
	assert.InDelta(t, 1, result.Impact.Eutrophication, 1e-9)
	assert.InDelta(t, 0.2, result.Impact.ResourceDepletion, 1e-9)
}

func TestScore_Rounding(t *testing.T) {
	e := newTestEngine()

	result := e.Score(
		AssessmentInput{EndOfLife: factors.EOLRecycling},
		PhysicalMetrics{
			CarbonKg:           123.456789,
			EnergyKWh:          6789.123456,
			EnergyIntensity:    6.789123,
			WaterL:             98765.43219,
			WasteKg:            21.987654,
			RecyclingPotential: 0.87654,
			MaterialEfficiency: 0.91239,
		},
	)

	assert.InDelta(t, 123.46, result.CarbonKg, 1e-9)
	assert.InDelta(t, 6.79, result.EnergyIntensity, 1e-9)
	assert.InDelta(t, 98765.43, result.WaterL, 1e-9)
	assert.InDelta(t, 0.877, result.RecyclingPotential, 1e-9)
	assert.InDelta(t, 0.912, result.MaterialEfficiency, 1e-9)

	// Energy and waste stay unrounded, and the impact breakdown derives from
	// the unrounded carbon figure.
	assert.InDelta(t, 6789.123456, result.EnergyKWh, 1e-9)
	assert.InDelta(t, 21.987654, result.WasteKg, 1e-9)
	assert.InDelta(t, 123.456789, result.Impact.ClimateChange, 1e-9)
	assert.InDelta(t, 123.456789*0.004, result.Impact.Acidification, 1e-9)
}
