package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/equivalency"
)

// Column width constants for explorer table formatting.
const (
	fieldKeyWidth    = 22 // Width for field name column
	fieldValueWidth  = 15 // Width for original/current value columns
	metricLabelWidth = 22 // Width for metric name column
	metricValueWidth = 16 // Width for baseline/current metric columns
	separatorWidth   = 72 // Width for horizontal separator lines
	minTruncateLen   = 3  // Minimum length before truncation with ellipsis
)

// RenderMetricDelta renders a styled metric delta with sign and directional
// arrow.
//
// Lower values are improvements for burden metrics (carbon, energy, water,
// waste); higher values are improvements for circularity and sustainability.
// Improvements render in the OK color, regressions in the warning color, and
// unchanged metrics in the muted color.
func RenderMetricDelta(delta float64, precision int, lowerIsBetter bool) string {
	// Round at display precision so float noise does not flip the arrow
	scale := math.Pow(10, float64(precision))
	rounded := math.Round(delta*scale) / scale

	var icon, sign string
	var color lipgloss.Color

	switch {
	case rounded > 0:
		icon = IconArrowUp
		sign = "+"
	case rounded < 0:
		icon = IconArrowDown
	default:
		icon = IconArrowRight
	}

	switch {
	case rounded == 0:
		color = ColorMuted
	case (rounded < 0) == lowerIsBetter:
		color = ColorOK
	default:
		color = ColorWarning
	}

	formatted := equivalency.FormatFloat(math.Abs(rounded), precision)
	style := lipgloss.NewStyle().Foreground(color).Bold(true)
	return style.Render(fmt.Sprintf("%s%s %s", sign, formatted, icon))
}

// RenderExplorerHeader renders the header for the pathway explorer TUI.
func RenderExplorerHeader(metal, route string) string {
	var sb strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorHeader).
		Border(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	sb.WriteString(titleStyle.Render("What-If Pathway Explorer"))
	sb.WriteString("\n\n")

	// Pathway info
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue).Bold(true)

	sb.WriteString(labelStyle.Render("Metal: "))
	sb.WriteString(valueStyle.Render(metal))
	sb.WriteString("\n")

	sb.WriteString(labelStyle.Render("Route: "))
	sb.WriteString(valueStyle.Render(route))

	return sb.String()
}

// metricLine pairs one metric's baseline and current values with its delta
// rendering parameters.
type metricLine struct {
	label         string
	baseline      string
	current       string
	delta         float64
	precision     int
	lowerIsBetter bool
}

// RenderMetricComparison renders the baseline-versus-current impact section.
func RenderMetricComparison(baseline, current engine.AssessmentResult) string {
	lines := []metricLine{
		{
			label:         "Carbon (kg CO2e)",
			baseline:      equivalency.FormatFloat(baseline.CarbonKg, 2),
			current:       equivalency.FormatFloat(current.CarbonKg, 2),
			delta:         current.CarbonKg - baseline.CarbonKg,
			precision:     2,
			lowerIsBetter: true,
		},
		{
			label:         "Energy (kWh)",
			baseline:      equivalency.FormatFloat(baseline.EnergyKWh, 2),
			current:       equivalency.FormatFloat(current.EnergyKWh, 2),
			delta:         current.EnergyKWh - baseline.EnergyKWh,
			precision:     2,
			lowerIsBetter: true,
		},
		{
			label:         "Water (L)",
			baseline:      equivalency.FormatFloat(baseline.WaterL, 0),
			current:       equivalency.FormatFloat(current.WaterL, 0),
			delta:         current.WaterL - baseline.WaterL,
			precision:     0,
			lowerIsBetter: true,
		},
		{
			label:         "Waste (kg)",
			baseline:      equivalency.FormatFloat(baseline.WasteKg, 2),
			current:       equivalency.FormatFloat(current.WasteKg, 2),
			delta:         current.WasteKg - baseline.WasteKg,
			precision:     2,
			lowerIsBetter: true,
		},
		{
			label:         "Circularity",
			baseline:      fmt.Sprintf("%.3f", baseline.Circularity),
			current:       fmt.Sprintf("%.3f", current.Circularity),
			delta:         current.Circularity - baseline.Circularity,
			precision:     3,
			lowerIsBetter: false,
		},
		{
			label:         "Sustainability",
			baseline:      fmt.Sprintf("%.1f/10", baseline.Sustainability),
			current:       fmt.Sprintf("%.1f/10", current.Sustainability),
			delta:         current.Sustainability - baseline.Sustainability,
			precision:     1,
			lowerIsBetter: false,
		},
	}

	var sb strings.Builder

	headerStyle := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	sb.WriteString(headerStyle.Render("Impact Comparison:"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	// Column headers
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s %-*s %-*s %s\n",
		metricLabelWidth, "Metric", metricValueWidth, "Baseline", metricValueWidth, "Current", "Δ")))
	sb.WriteString("\n")

	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	for _, line := range lines {
		sb.WriteString("  ")
		sb.WriteString(labelStyle.Render(fmt.Sprintf("%-*s ", metricLabelWidth, line.label)))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s ", metricValueWidth, line.baseline)))
		sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s ", metricValueWidth, line.current)))
		sb.WriteString(RenderMetricDelta(line.delta, line.precision, line.lowerIsBetter))
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// RenderFieldTable renders the editable pathway field table.
func RenderFieldTable(fields []FieldRow, focusedRow int, editing bool) string {
	if len(fields) == 0 {
		muted := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
		return muted.Render("No fields to edit")
	}

	var sb strings.Builder

	// Header
	headerStyle := lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	sb.WriteString(headerStyle.Render("Pathway Fields:"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")

	// Column headers
	labelStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	sb.WriteString(labelStyle.Render(fmt.Sprintf("  %-*s %-*s %s\n",
		fieldKeyWidth, "Field", fieldValueWidth, "Original", "Current")))
	sb.WriteString("\n")

	// Field rows
	for i, field := range fields {
		row := renderFieldRow(field, i == focusedRow, editing && i == focusedRow)
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// renderFieldRow renders a single editable field row.
func renderFieldRow(field FieldRow, focused, editing bool) string {
	var sb strings.Builder

	// Focus indicator
	if focused {
		if editing {
			sb.WriteString("> ")
		} else {
			sb.WriteString("→ ")
		}
	} else {
		sb.WriteString("  ")
	}

	keyStyle := lipgloss.NewStyle().Foreground(ColorLabel)
	valueStyle := lipgloss.NewStyle().Foreground(ColorValue)
	modifiedStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)

	// Field name
	sb.WriteString(keyStyle.Render(fmt.Sprintf("%-*s ", fieldKeyWidth, truncate(field.Key, fieldKeyWidth))))

	// Original value
	origTrunc := truncate(field.OriginalValue, fieldValueWidth)
	sb.WriteString(valueStyle.Render(fmt.Sprintf("%-*s ", fieldValueWidth, origTrunc)))

	// Current value (highlighted if changed)
	currTrunc := truncate(field.CurrentValue, fieldValueWidth)
	currFormatted := fmt.Sprintf("%-*s", fieldValueWidth, currTrunc)
	if field.CurrentValue != field.OriginalValue {
		sb.WriteString(modifiedStyle.Render(currFormatted))
		if !editing {
			muted := lipgloss.NewStyle().Foreground(ColorMuted)
			sb.WriteString(muted.Render(" (edited)"))
		}
	} else {
		sb.WriteString(valueStyle.Render(currFormatted))
	}

	return sb.String()
}

// truncate truncates a string to the specified length with ellipsis.
// Uses rune-aware counting to properly handle multi-byte UTF-8 characters.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}

// RenderExplorerHelp renders the keyboard shortcut help text.
func RenderExplorerHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	shortcuts := []string{
		"↑/↓: Navigate",
		"Enter: Edit field",
		"Esc: Cancel edit",
		"q: Quit",
	}

	return helpStyle.Render(strings.Join(shortcuts, " | "))
}

// RenderCalculating renders the in-progress indicator for impact
// recalculation.
func RenderCalculating() string {
	loadingStyle := lipgloss.NewStyle().
		Foreground(ColorSpinner).
		Bold(true)

	return loadingStyle.Render("Recalculating impact...")
}
