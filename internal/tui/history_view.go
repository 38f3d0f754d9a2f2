package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/equivalency"
)

// msgSelectedOutOfBounds is shown when the detail selection no longer exists.
const msgSelectedOutOfBounds = "Selected assessment is out of range"

// View renders the current view (Bubble Tea interface).
func (m HistoryModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

// renderListView renders the assessment table with optional filter input.
func (m HistoryModel) renderListView() string {
	var sections []string

	sections = append(sections, HeaderStyle.Render("Assessment History"))

	// Table
	sections = append(sections, m.table.View())

	// Status bar with sort/filter indicators
	sections = append(sections, m.renderStatusBar())

	// Filter input (if active)
	if m.showFilter {
		filterView := LabelStyle.Render("Filter: ") + m.textInput.View()
		sections = append(sections, filterView)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar displays current sort field and filter status.
func (m HistoryModel) renderStatusBar() string {
	sortLabel := m.getSortLabel()
	filterStatus := ""

	if m.textInput.Value() != "" {
		filterStatus = fmt.Sprintf(" | Filtered: %d/%d", len(m.rows), len(m.allRows))
	}

	status := fmt.Sprintf("Sort: %s%s | Press 's' to cycle, '/' to filter, 'q' to quit", sortLabel, filterStatus)
	return SubtleStyle.Render(status)
}

// getSortLabel returns the human-readable label for the current sort field.
func (m HistoryModel) getSortLabel() string {
	switch m.sortBy {
	case SortByCreated:
		return "Created"
	case SortByCarbon:
		return "Carbon"
	case SortByScore:
		return "Score"
	default:
		return "Unknown"
	}
}

// renderDetailView renders a single stored assessment.
func (m HistoryModel) renderDetailView() string {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return msgSelectedOutOfBounds
	}

	a := m.rows[m.selected]
	var content strings.Builder

	// Header and record metadata
	content.WriteString(HeaderStyle.Render("ASSESSMENT DETAIL"))
	content.WriteString("\n\n")
	content.WriteString(LabelStyle.Render("ID:      "))
	content.WriteString(ValueStyle.Render(a.ID))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("User:    "))
	content.WriteString(ValueStyle.Render(a.UserID))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Metal:   "))
	content.WriteString(ValueStyle.Render(a.Metal))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Route:   "))
	content.WriteString(ValueStyle.Render(a.Route))
	content.WriteString("\n")
	content.WriteString(LabelStyle.Render("Created: "))
	content.WriteString(ValueStyle.Render(a.CreatedAt.Format(time.RFC3339)))
	content.WriteString("\n\n")

	// Metric sections from the stored result document
	result, err := a.Result()
	if err != nil {
		content.WriteString(CriticalStyle.Render(fmt.Sprintf("Stored result unavailable: %v", err)))
		content.WriteString("\n")
	} else {
		renderDetailImpact(&content, result)
		renderDetailScores(&content, result)
	}

	content.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(m.width - borderPadding).Render(content.String())
}

// renderDetailImpact writes the physical impact metrics to the builder.
func renderDetailImpact(content *strings.Builder, result engine.AssessmentResult) {
	content.WriteString(HeaderStyle.Render("IMPACT"))
	content.WriteString("\n")
	writeMetricLine(content, "Carbon:", equivalency.FormatFloat(result.CarbonKg, 2)+" kg CO2e")
	writeMetricLine(content, "Energy:", equivalency.FormatFloat(result.EnergyKWh, 2)+" kWh")
	writeMetricLine(content, "Intensity:", fmt.Sprintf("%.2f kWh/kg", result.EnergyIntensity))
	writeMetricLine(content, "Water:", equivalency.FormatFloat(result.WaterL, 0)+" L")
	writeMetricLine(content, "Waste:", equivalency.FormatFloat(result.WasteKg, 2)+" kg")
	content.WriteString("\n")
}

// renderDetailScores writes the derived score metrics to the builder.
func renderDetailScores(content *strings.Builder, result engine.AssessmentResult) {
	content.WriteString(HeaderStyle.Render("SCORES"))
	content.WriteString("\n")
	writeMetricLine(content, "Recycling potential:", fmt.Sprintf("%.3f", result.RecyclingPotential))
	writeMetricLine(content, "Material efficiency:", fmt.Sprintf("%.3f", result.MaterialEfficiency))
	writeMetricLine(content, "Circularity:", fmt.Sprintf("%.3f", result.Circularity))
	writeMetricLine(content, "Sustainability:", fmt.Sprintf("%.1f/10", result.Sustainability))
}

// writeMetricLine writes one label/value line at detail indentation.
func writeMetricLine(content *strings.Builder, label, value string) {
	content.WriteString(LabelStyle.Render(fmt.Sprintf("  %-22s", label)))
	content.WriteString(ValueStyle.Render(value))
	content.WriteString("\n")
}
