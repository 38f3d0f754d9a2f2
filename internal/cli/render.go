package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/metalpath/metalpath/internal/equivalency"
	"github.com/metalpath/metalpath/internal/factors"
	"github.com/metalpath/metalpath/internal/report"
	"github.com/metalpath/metalpath/internal/store"
)

// Output formats accepted by --output.
const (
	outputFormatTable  = "table"
	outputFormatJSON   = "json"
	outputFormatNDJSON = "ndjson"
)

const createdAtFormat = "2006-01-02 15:04"

// validateOutputFormat rejects unknown --output values before any work runs.
func validateOutputFormat(format string) error {
	switch format {
	case outputFormatTable, outputFormatJSON, outputFormatNDJSON:
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be one of table, json, ndjson", format)
	}
}

// renderAssessment writes one assessment report in the requested format.
func renderAssessment(w io.Writer, format string, rep report.Report) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case outputFormatNDJSON:
		return json.NewEncoder(w).Encode(rep)
	default:
		renderAssessmentTable(w, rep)
		return nil
	}
}

func renderAssessmentTable(w io.Writer, rep report.Report) {
	result := rep.Result
	in := result.Input

	fmt.Fprintf(w, "Environmental Impact Assessment\n")
	fmt.Fprintf(w, "===============================\n\n")

	fmt.Fprintf(w, "Pathway:  %s (%s route)\n", in.Metal, in.Route)
	fmt.Fprintf(w, "Quantity: %s kg\n\n", equivalency.FormatFloat(in.QuantityKg, 0))

	fmt.Fprintf(w, "Impact Metrics:\n")
	fmt.Fprintf(w, "---------------\n")
	fmt.Fprintf(w, "  Carbon footprint:    %s kg CO2e\n", equivalency.FormatFloat(result.CarbonKg, 2))
	fmt.Fprintf(w, "  Energy consumption:  %s kWh\n", equivalency.FormatFloat(result.EnergyKWh, 2))
	fmt.Fprintf(w, "  Energy intensity:    %.2f kWh/kg\n", result.EnergyIntensity)
	fmt.Fprintf(w, "  Water footprint:     %s L\n", equivalency.FormatFloat(result.WaterL, 0))
	fmt.Fprintf(w, "  Waste generation:    %s kg\n\n", equivalency.FormatFloat(result.WasteKg, 2))

	fmt.Fprintf(w, "Scores:\n")
	fmt.Fprintf(w, "-------\n")
	fmt.Fprintf(w, "  Recycling potential:  %.3f\n", result.RecyclingPotential)
	fmt.Fprintf(w, "  Material efficiency:  %.3f\n", result.MaterialEfficiency)
	fmt.Fprintf(w, "  Circularity index:    %.3f (%s)\n", result.Circularity, rep.Summary.CircularityRating)
	fmt.Fprintf(w, "  Sustainability:       %.1f/10 (%s)\n", result.Sustainability, rep.Summary.SustainabilityRating)

	if len(rep.Summary.Equivalencies) > 0 {
		fmt.Fprintf(w, "\nCarbon Equivalencies:\n")
		fmt.Fprintf(w, "---------------------\n")
		for _, eq := range rep.Summary.Equivalencies {
			fmt.Fprintf(w, "  ~ %s %s\n", eq.FormattedValue, eq.Label)
		}
	}

	if len(rep.Summary.KeyRecommendations) > 0 {
		fmt.Fprintf(w, "\nRecommendations:\n")
		fmt.Fprintf(w, "----------------\n")
		for _, rec := range rep.Summary.KeyRecommendations {
			fmt.Fprintf(w, "  - %s\n", rec)
		}
	}

	if len(rep.Quality.Findings) > 0 {
		fmt.Fprintf(w, "\nData Quality (%.0f%% complete):\n", rep.Quality.CompletenessPct)
		fmt.Fprintf(w, "------------------------------\n")
		for _, f := range rep.Quality.Findings {
			fmt.Fprintf(w, "  [%s] %s\n", f.Code, f.Message)
		}
	}
}

// renderComparison writes a multi-pathway comparison in the requested format.
// NDJSON streams one line per pathway followed by the analysis callouts.
func renderComparison(w io.Writer, format string, rep report.ComparisonReport) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	case outputFormatNDJSON:
		enc := json.NewEncoder(w)
		for _, pathway := range rep.Insights.Pathways {
			if err := enc.Encode(pathway); err != nil {
				return err
			}
		}
		return enc.Encode(rep.Analysis)
	default:
		renderComparisonTable(w, rep)
		return nil
	}
}

func renderComparisonTable(w io.Writer, rep report.ComparisonReport) {
	fmt.Fprintf(w, "Pathway Comparison\n")
	fmt.Fprintf(w, "==================\n\n")

	fmt.Fprintf(w, "  %-4s %-24s %14s %14s %8s %8s\n",
		"ID", "Pathway", "Carbon (kg)", "Energy (kWh)", "Circ.", "Score")
	for _, p := range rep.Insights.Pathways {
		fmt.Fprintf(w, "  %-4d %-24s %14s %14s %8.3f %8.1f\n",
			p.ID, p.Name,
			equivalency.FormatFloat(p.Result.CarbonKg, 2),
			equivalency.FormatFloat(p.Result.EnergyKWh, 2),
			p.Result.Circularity,
			p.Result.Sustainability)
	}

	fmt.Fprintf(w, "\nAnalysis:\n")
	fmt.Fprintf(w, "---------\n")
	fmt.Fprintf(w, "  %s\n", rep.Analysis.BestCarbon.Statement)
	fmt.Fprintf(w, "  %s\n", rep.Analysis.BestSustainability.Statement)
}

// renderMetalList writes the supported-metal catalog in the requested format.
func renderMetalList(w io.Writer, format string, catalog []factors.MetalProperties) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	case outputFormatNDJSON:
		enc := json.NewEncoder(w)
		for _, props := range catalog {
			if err := enc.Encode(props); err != nil {
				return err
			}
		}
		return nil
	default:
		fmt.Fprintf(w, "Supported Metals\n")
		fmt.Fprintf(w, "================\n\n")
		fmt.Fprintf(w, "  %-10s %10s %13s %11s %14s\n",
			"Metal", "Density", "Melting (C)", "Recycling", "Lifespan (y)")
		for _, props := range catalog {
			fmt.Fprintf(w, "  %-10s %10.2f %13s %10.0f%% %14d\n",
				props.Metal,
				props.DensityGPerCm3,
				equivalency.FormatFloat(props.MeltingPointC, 0),
				props.RecyclingRate*100,
				props.TypicalLifespanYears)
		}
		return nil
	}
}

// renderMetalDetail writes the full property sheet for one metal.
func renderMetalDetail(w io.Writer, format string, props factors.MetalProperties) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(props)
	case outputFormatNDJSON:
		return json.NewEncoder(w).Encode(props)
	default:
		title := fmt.Sprintf("Metal Properties: %s", props.Metal)
		fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len(title)))

		fmt.Fprintf(w, "  Density:                 %.2f g/cm3\n", props.DensityGPerCm3)
		fmt.Fprintf(w, "  Melting point:           %s C\n", equivalency.FormatFloat(props.MeltingPointC, 0))
		fmt.Fprintf(w, "  Recycling rate:          %.0f%%\n", props.RecyclingRate*100)
		fmt.Fprintf(w, "  Recyclability:           %.2f\n", props.Recyclability)
		fmt.Fprintf(w, "  Typical lifespan:        %d years\n", props.TypicalLifespanYears)
		fmt.Fprintf(w, "  Thermal conductivity:    %.1f W/(m*K)\n", props.ThermalConductivity)
		fmt.Fprintf(w, "  Electrical conductivity: %.1f MS/m\n", props.ElectricalConductivity)
		fmt.Fprintf(w, "  Corrosion resistance:    %s\n", props.CorrosionResistance)
		fmt.Fprintf(w, "  Strength to weight:      %s\n", props.StrengthToWeight)
		if len(props.CommonForms) > 0 {
			fmt.Fprintf(w, "  Common forms:            %s\n", strings.Join(props.CommonForms, ", "))
		}
		return nil
	}
}

// historyView is the JSON shape of the history command output.
type historyView struct {
	User        string               `json:"user"`
	Stats       store.DashboardStats `json:"stats"`
	Assessments []store.Assessment   `json:"assessments"`
}

// renderHistory writes the aggregate dashboard plus the assessment rows.
// NDJSON streams one line per assessment and skips the aggregates.
func renderHistory(w io.Writer, format string, view historyView) error {
	switch format {
	case outputFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case outputFormatNDJSON:
		enc := json.NewEncoder(w)
		for _, a := range view.Assessments {
			if err := enc.Encode(a); err != nil {
				return err
			}
		}
		return nil
	default:
		renderHistoryTable(w, view)
		return nil
	}
}

func renderHistoryTable(w io.Writer, view historyView) {
	fmt.Fprintf(w, "Assessment History\n")
	fmt.Fprintf(w, "==================\n\n")

	fmt.Fprintf(w, "User:              %s\n", view.User)
	fmt.Fprintf(w, "Total assessments: %d\n", view.Stats.TotalAssessments)
	if view.Stats.TotalAssessments > 0 {
		fmt.Fprintf(w, "Average carbon:    %s kg CO2e\n", equivalency.FormatFloat(view.Stats.AvgCarbonKg, 2))
		fmt.Fprintf(w, "Average score:     %.1f/10\n", view.Stats.AvgSustainability)
		fmt.Fprintf(w, "Average circularity: %.3f\n", view.Stats.AvgCircularity)
	}

	if len(view.Assessments) == 0 {
		fmt.Fprintf(w, "\nNo saved assessments.\n")
		return
	}

	fmt.Fprintf(w, "\n  %-26s %-10s %-10s %14s %7s %-16s\n",
		"ID", "Metal", "Route", "Carbon (kg)", "Score", "Created")
	for _, a := range view.Assessments {
		fmt.Fprintf(w, "  %-26s %-10s %-10s %14s %7.1f %-16s\n",
			a.ID, a.Metal, a.Route,
			equivalency.FormatFloat(a.CarbonKg, 2),
			a.Sustainability,
			a.CreatedAt.Format(createdAtFormat))
	}
}
