package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metalpath/metalpath/internal/factors"
)

func TestValidateRequest(t *testing.T) {
	valid := map[string]any{
		"metal_type":       "aluminum",
		"quantity":         1000.0,
		"production_route": "primary",
	}

	t.Run("complete request passes", func(t *testing.T) {
		assert.NoError(t, ValidateRequest(valid))
	})

	t.Run("each required field is enforced", func(t *testing.T) {
		for _, field := range []string{"metal_type", "quantity", "production_route"} {
			raw := map[string]any{}
			for k, v := range valid {
				raw[k] = v
			}
			delete(raw, field)

			err := ValidateRequest(raw)
			require.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("nil value counts as missing", func(t *testing.T) {
		raw := map[string]any{
			"metal_type":       nil,
			"quantity":         1000.0,
			"production_route": "primary",
		}
		assert.ErrorIs(t, ValidateRequest(raw), ErrMissingField)
	})
}

// TestEstimateAll_PrimaryAluminum pins the full pipeline against the
// hand-computed reference figures for a primary aluminum pathway.
func TestEstimateAll_PrimaryAluminum(t *testing.T) {
	e := newTestEngine()

	result, err := e.EstimateAll(context.Background(), map[string]any{
		"metal_type":         "aluminum",
		"production_route":   "primary",
		"quantity":           1000.0,
		"transport_distance": 500.0,
		"electricity_source": "grid_mix",
	})
	require.NoError(t, err)

	// 1000*11.5*0.9 production + 1000*500*0.001 transport.
	assert.InDelta(t, 10850, result.CarbonKg, 1e-9)
	assert.InDelta(t, 15000, result.EnergyKWh, 1e-9)
	assert.InDelta(t, 15, result.EnergyIntensity, 1e-9)
	assert.InDelta(t, 1500000, result.WaterL, 1e-9)
	assert.InDelta(t, 32, result.WasteKg, 1e-9)
	assert.InDelta(t, 0.95, result.RecyclingPotential, 1e-9)
	assert.InDelta(t, 0.85, result.MaterialEfficiency, 1e-9)
	assert.InDelta(t, 0.6475, result.Circularity, 0.001)
	assert.InDelta(t, 6.7, result.Sustainability, 1e-9)

	assert.InDelta(t, 10850, result.Impact.ClimateChange, 1e-6)
	assert.InDelta(t, 0.1085, result.Impact.OzoneDepletion, 1e-6)
	assert.InDelta(t, 43.4, result.Impact.Acidification, 1e-6)
	assert.InDelta(t, 10.85, result.Impact.Eutrophication, 1e-6)
	assert.InDelta(t, 0.15, result.Impact.ResourceDepletion, 1e-9)

	// The normalized input rides along with the result.
	assert.Equal(t, factors.MetalAluminum, result.Input.Metal)
	assert.InDelta(t, 500, result.Input.TransportKm, 1e-9)
}

// TestEstimateAll_RecycledAluminum pins the recycled-route reference figures.
func TestEstimateAll_RecycledAluminum(t *testing.T) {
	e := newTestEngine()

	result, err := e.EstimateAll(context.Background(), map[string]any{
		"metal_type":           "aluminum",
		"production_route":     "recycled",
		"quantity":             1000.0,
		"transport_distance":   500.0,
		"electricity_source":   "grid_mix",
		"recycled_content":     0.9,
		"end_of_life_scenario": "recycling",
	})
	require.NoError(t, err)

	// 1000*0.6*0.9 production + 500 transport.
	assert.InDelta(t, 1040, result.CarbonKg, 1e-9)
	assert.InDelta(t, 750, result.EnergyKWh, 1e-9)
	assert.InDelta(t, 0.75, result.EnergyIntensity, 1e-9)
	assert.InDelta(t, 150000, result.WaterL, 1e-9)
	assert.InDelta(t, 25.2, result.WasteKg, 1e-9)
	assert.InDelta(t, 0.95, result.RecyclingPotential, 1e-9)
	assert.InDelta(t, 0.935, result.MaterialEfficiency, 1e-9)
	assert.InDelta(t, 0.939, result.Circularity, 1e-9)
	assert.InDelta(t, 9.4, result.Sustainability, 1e-9)
}

func TestEstimateAll_Deterministic(t *testing.T) {
	e := newTestEngine()
	raw := map[string]any{
		"metal_type":       "nickel",
		"production_route": "primary",
		"quantity":         350.0,
	}

	first, err := e.EstimateAll(context.Background(), raw)
	require.NoError(t, err)
	second, err := e.EstimateAll(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEstimateAll_ContextCancelled(t *testing.T) {
	e := newTestEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.EstimateAll(ctx, map[string]any{"metal_type": "steel"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineOptions(t *testing.T) {
	t.Run("custom bounds change the quantity clamp", func(t *testing.T) {
		e := New(factors.Default(), WithBounds(Bounds{
			MinQuantityKg:  1,
			MaxQuantityKg:  100,
			MaxTransportKm: 10000,
		}))

		input := e.Normalize(map[string]any{"quantity": 5000.0})
		assert.InDelta(t, 100, input.QuantityKg, 1e-9)
	})

	t.Run("nil noise option keeps the disabled model", func(t *testing.T) {
		base := newTestEngine()
		e := New(factors.Default(), WithNoise(nil))

		raw := map[string]any{"metal_type": "zinc", "quantity": 100.0}
		want, err := base.EstimateAll(context.Background(), raw)
		require.NoError(t, err)
		got, err := e.EstimateAll(context.Background(), raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestGaussianNoise(t *testing.T) {
	t.Run("same seed reproduces the same factors", func(t *testing.T) {
		a := NewGaussianNoise(42)
		b := NewGaussianNoise(42)

		for range 100 {
			assert.InDelta(t, a.Factor(0.05, 0.5), b.Factor(0.05, 0.5), 1e-12)
		}
	})

	t.Run("factors never fall below the floor", func(t *testing.T) {
		n := NewGaussianNoise(7)
		for range 1000 {
			assert.GreaterOrEqual(t, n.Factor(10, 0.5), 0.5)
		}
	})

	t.Run("seeded engines agree end to end", func(t *testing.T) {
		raw := map[string]any{
			"metal_type":       "copper",
			"production_route": "primary",
			"quantity":         500.0,
		}

		first, err := New(factors.Default(), WithNoise(NewGaussianNoise(99))).
			EstimateAll(context.Background(), raw)
		require.NoError(t, err)
		second, err := New(factors.Default(), WithNoise(NewGaussianNoise(99))).
			EstimateAll(context.Background(), raw)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}
