package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRenderMetricDelta tests the styled delta rendering.
func TestRenderMetricDelta(t *testing.T) {
	t.Run("renders an increase with plus sign and up arrow", func(t *testing.T) {
		result := RenderMetricDelta(74.9, 2, true)

		assert.Contains(t, result, "+")
		assert.Contains(t, result, IconArrowUp)
		assert.Contains(t, result, "74.90")
	})

	t.Run("renders a decrease with down arrow", func(t *testing.T) {
		result := RenderMetricDelta(-9810, 2, true)

		assert.NotContains(t, result, "+")
		assert.Contains(t, result, IconArrowDown)
		assert.Contains(t, result, "9,810.00")
	})

	t.Run("renders zero with right arrow", func(t *testing.T) {
		result := RenderMetricDelta(0.0, 2, true)

		assert.Contains(t, result, IconArrowRight)
		assert.Contains(t, result, "0.00")
	})

	t.Run("rounds below display precision to zero", func(t *testing.T) {
		result := RenderMetricDelta(0.0004, 3, false)

		assert.Contains(t, result, IconArrowRight)
	})
}

// TestRenderExplorerHeader tests the explorer header rendering.
func TestRenderExplorerHeader(t *testing.T) {
	result := RenderExplorerHeader("aluminum", "recycled")

	assert.Contains(t, result, "What-If Pathway Explorer")
	assert.Contains(t, result, "Metal:")
	assert.Contains(t, result, "aluminum")
	assert.Contains(t, result, "recycled")
}

// TestRenderMetricComparison tests the baseline-versus-current section.
func TestRenderMetricComparison(t *testing.T) {
	baseline := explorerBaseline()
	current := explorerBaseline()
	current.CarbonKg = 1040
	current.Sustainability = 9.4

	result := RenderMetricComparison(baseline, current)

	assert.Contains(t, result, "Impact Comparison:")
	assert.Contains(t, result, "Carbon (kg CO2e)")
	assert.Contains(t, result, "10,850.00")
	assert.Contains(t, result, "1,040.00")
	assert.Contains(t, result, "Circularity")
	assert.Contains(t, result, "9.4/10")
}

// TestRenderFieldTable tests the editable field table rendering.
func TestRenderFieldTable(t *testing.T) {
	fields := []FieldRow{
		{Key: "metal_type", OriginalValue: "aluminum", CurrentValue: "aluminum"},
		{Key: "quantity", OriginalValue: "1000", CurrentValue: "2500"},
	}

	t.Run("renders empty placeholder", func(t *testing.T) {
		result := RenderFieldTable(nil, 0, false)

		assert.Contains(t, result, "No fields to edit")
	})

	t.Run("renders field names and values", func(t *testing.T) {
		result := RenderFieldTable(fields, 0, false)

		assert.Contains(t, result, "Pathway Fields:")
		assert.Contains(t, result, "metal_type")
		assert.Contains(t, result, "aluminum")
		assert.Contains(t, result, "2500")
	})

	t.Run("marks the focused row", func(t *testing.T) {
		result := RenderFieldTable(fields, 0, false)

		assert.Contains(t, result, "→ ")
	})

	t.Run("marks the editing row", func(t *testing.T) {
		result := RenderFieldTable(fields, 1, true)

		assert.Contains(t, result, "> ")
	})

	t.Run("marks changed values", func(t *testing.T) {
		result := RenderFieldTable(fields, 0, false)

		assert.Contains(t, result, "(edited)")
	})

	t.Run("truncates long values", func(t *testing.T) {
		long := []FieldRow{{
			Key:           "end_of_life_scenario",
			OriginalValue: "a-scenario-name-well-beyond-the-column",
			CurrentValue:  "a-scenario-name-well-beyond-the-column",
		}}

		result := RenderFieldTable(long, 0, false)
		assert.Contains(t, result, "...")
		assert.NotContains(t, result, "a-scenario-name-well-beyond-the-column")
	})
}

// TestRenderExplorerHelp tests the shortcut help line.
func TestRenderExplorerHelp(t *testing.T) {
	result := RenderExplorerHelp()

	assert.Contains(t, result, "↑/↓: Navigate")
	assert.Contains(t, result, "Enter: Edit field")
	assert.Contains(t, result, "q: Quit")
}

// TestRenderCalculating tests the busy indicator.
func TestRenderCalculating(t *testing.T) {
	assert.Contains(t, RenderCalculating(), "Recalculating impact...")
}
