// Package report assembles presentation-ready report structures from
// completed assessment and comparison results. Builders are pure: they derive
// ratings, recommendations, and equivalency figures from results they are
// handed, without touching storage or performing I/O. Rendering (JSON, CSV,
// terminal) is the caller's concern.
package report

import (
	"fmt"
	"time"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/equivalency"
)

// Version is the report schema version stamped into every Metadata block.
const Version = "1.0"

// Report type labels.
const (
	assessmentReportType = "LCA Assessment Report"
	comparisonReportType = "LCA Comparison Report"
)

// Sustainability score band boundaries on the 0-10 scale.
const (
	excellentMinScore = 8.0
	goodMinScore      = 6.0
	fairMinScore      = 4.0
)

// Circularity index band boundaries on the 0-1 scale.
const (
	highlyCircularMin     = 0.8
	moderatelyCircularMin = 0.6
	somewhatCircularMin   = 0.4
)

// Recommendation triggers. A recommendation appears when its metric crosses
// the threshold; at most maxRecommendations survive, in declaration order.
const (
	maxRecommendations      = 3
	highCarbonThresholdKg   = 1000.0
	highEnergyThresholdKWh  = 5000.0
	lowCircularityThreshold = 0.5
	lowEfficiencyThreshold  = 0.70
)

// Display precision for callout statements.
const (
	carbonStatementDecimals = 2
	scoreStatementDecimals  = 1
)

// Build assembles the full report for one assessment, stamped with the given
// generation time.
func Build(result engine.AssessmentResult, now time.Time) Report {
	return Report{
		Metadata: Metadata{
			GeneratedAt: now.UTC(),
			ReportType:  assessmentReportType,
			Version:     Version,
		},
		Result:  result,
		Summary: BuildSummary(result),
		Quality: QualitySection{
			CompletenessPct: result.Input.Completeness,
			Findings:        engine.DataQuality(result.Input),
		},
	}
}

// BuildSummary condenses one assessment result into its executive summary.
func BuildSummary(result engine.AssessmentResult) Summary {
	// Footprints are clamped non-negative upstream, so the only conceivable
	// failure is a non-finite value; an empty equivalency list is the right
	// degradation either way.
	eqs, err := equivalency.Equivalencies(result.CarbonKg)
	if err != nil {
		eqs = nil
	}

	return Summary{
		Metal:                string(result.Input.Metal),
		TotalCarbonKg:        result.CarbonKg,
		SustainabilityRating: RateSustainability(result.Sustainability),
		CircularityRating:    RateCircularity(result.Circularity),
		KeyRecommendations:   Recommendations(result),
		Equivalencies:        eqs,
	}
}

// BuildComparison assembles the comparison report for a completed multi
// pathway analysis, stamped with the given generation time.
func BuildComparison(insights engine.Insights, now time.Time) ComparisonReport {
	return ComparisonReport{
		Metadata: Metadata{
			GeneratedAt: now.UTC(),
			ReportType:  comparisonReportType,
			Version:     Version,
		},
		Insights: insights,
		Analysis: ComparisonAnalysis{
			BestCarbon:         carbonCallout(insights.BestCarbon),
			BestSustainability: sustainabilityCallout(insights.BestSustainability),
		},
	}
}

// RateSustainability grades a 0-10 sustainability score.
func RateSustainability(score float64) SustainabilityRating {
	switch {
	case score >= excellentMinScore:
		return RatingExcellent
	case score >= goodMinScore:
		return RatingGood
	case score >= fairMinScore:
		return RatingFair
	default:
		return RatingPoor
	}
}

// RateCircularity grades a 0-1 circularity index.
func RateCircularity(index float64) CircularityRating {
	switch {
	case index >= highlyCircularMin:
		return RatingHighlyCircular
	case index >= moderatelyCircularMin:
		return RatingModeratelyCircular
	case index >= somewhatCircularMin:
		return RatingSomewhatCircular
	default:
		return RatingLinear
	}
}

// Recommendations derives improvement actions from an assessment result.
// Triggers are checked highest impact first and the list is capped at
// maxRecommendations, so a fourth trigger never displaces an earlier one.
func Recommendations(result engine.AssessmentResult) []string {
	var recs []string

	if result.CarbonKg > highCarbonThresholdKg {
		recs = append(recs, "Consider switching to renewable energy sources to reduce carbon footprint")
	}
	if result.EnergyKWh > highEnergyThresholdKWh {
		recs = append(recs, "Implement energy efficiency measures in production processes")
	}
	if result.Circularity < lowCircularityThreshold {
		recs = append(recs, "Increase recycling and circular economy practices")
	}
	if result.MaterialEfficiency < lowEfficiencyThreshold {
		recs = append(recs, "Optimize material usage to reduce waste")
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func carbonCallout(best engine.BestEntry) Callout {
	return Callout{
		PathwayID: best.PathwayID,
		Name:      best.Name,
		Value:     best.Value,
		Statement: fmt.Sprintf("%s has the lowest carbon footprint at %s kg CO2e",
			best.Name, equivalency.FormatFloat(best.Value, carbonStatementDecimals)),
	}
}

func sustainabilityCallout(best engine.BestEntry) Callout {
	return Callout{
		PathwayID: best.PathwayID,
		Name:      best.Name,
		Value:     best.Value,
		Statement: fmt.Sprintf("%s has the highest sustainability score at %s of 10",
			best.Name, equivalency.FormatFloat(best.Value, scoreStatementDecimals)),
	}
}
