package report

import (
	"time"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/equivalency"
)

// SustainabilityRating grades a 0-10 sustainability score into a display
// band.
type SustainabilityRating string

// Sustainability rating bands, best to worst.
const (
	RatingExcellent SustainabilityRating = "Excellent"
	RatingGood      SustainabilityRating = "Good"
	RatingFair      SustainabilityRating = "Fair"
	RatingPoor      SustainabilityRating = "Poor"
)

// CircularityRating grades a 0-1 circularity index into a display band.
type CircularityRating string

// Circularity rating bands, best to worst.
const (
	RatingHighlyCircular     CircularityRating = "Highly Circular"
	RatingModeratelyCircular CircularityRating = "Moderately Circular"
	RatingSomewhatCircular   CircularityRating = "Somewhat Circular"
	RatingLinear             CircularityRating = "Linear"
)

// Metadata stamps every generated report with provenance fields.
type Metadata struct {
	// GeneratedAt is the report creation time in UTC.
	GeneratedAt time.Time `json:"generated_at"`
	// ReportType distinguishes assessment reports from comparison reports.
	ReportType string `json:"report_type"`
	// Version is the report schema version.
	Version string `json:"version"`
}

// Summary condenses one assessment into the fields a dashboard or executive
// overview needs.
type Summary struct {
	// Metal is the assessed metal type.
	Metal string `json:"metal_type"`
	// TotalCarbonKg is the carbon footprint in kg CO2e.
	TotalCarbonKg float64 `json:"total_carbon_footprint"`
	// SustainabilityRating is the display band for the sustainability score.
	SustainabilityRating SustainabilityRating `json:"sustainability_rating"`
	// CircularityRating is the display band for the circularity index.
	CircularityRating CircularityRating `json:"circularity_rating"`
	// KeyRecommendations lists at most three improvement actions, highest
	// impact first.
	KeyRecommendations []string `json:"key_recommendations"`
	// Equivalencies translates the carbon footprint into everyday terms.
	// Empty when the footprint is below the display threshold.
	Equivalencies []equivalency.Equivalency `json:"carbon_equivalencies,omitempty"`
}

// QualitySection surfaces the soft data-quality findings alongside the input
// completeness they were derived from.
type QualitySection struct {
	// CompletenessPct is the percentage of recognized input fields present.
	CompletenessPct float64 `json:"completeness_score"`
	// Findings lists the data-quality observations, possibly empty.
	Findings []engine.Finding `json:"findings"`
}

// Report packages one completed assessment with its summary and data-quality
// sections.
type Report struct {
	Metadata Metadata                `json:"metadata"`
	Result   engine.AssessmentResult `json:"assessment"`
	Summary  Summary                 `json:"summary"`
	Quality  QualitySection          `json:"data_quality"`
}

// Callout names the winning pathway for one comparison dimension and carries
// a ready-to-print statement about it.
type Callout struct {
	// PathwayID is the winner's 1-based id.
	PathwayID int `json:"pathway_id"`
	// Name is the winner's label.
	Name string `json:"pathway_name"`
	// Value is the winning metric value.
	Value float64 `json:"value"`
	// Statement is the human-readable sentence describing the win.
	Statement string `json:"statement"`
}

// ComparisonAnalysis calls out the best performer on each comparison axis.
type ComparisonAnalysis struct {
	BestCarbon         Callout `json:"best_carbon_performance"`
	BestSustainability Callout `json:"best_sustainability"`
}

// ComparisonReport packages comparison insights with the analysis callouts.
type ComparisonReport struct {
	Metadata Metadata           `json:"metadata"`
	Insights engine.Insights    `json:"comparison"`
	Analysis ComparisonAnalysis `json:"analysis"`
}
